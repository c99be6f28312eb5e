package http

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP извлекает адрес клиента: первый элемент X-Forwarded-For,
// иначе RemoteAddr. Порт отбрасывается в обоих случаях, иначе
// записанный в пост адрес никогда не совпадет с аргументом /ban.
// Пустая строка означает, что адрес определить не удалось.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip != "" {
			return stripPort(ip)
		}
	}

	return stripPort(c.Request.RemoteAddr)
}

// stripPort убирает порт из адреса вида ip:port; адрес без порта
// возвращается как есть
func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
