package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbs-server/internal/privilege"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	t.Run("Named commands", func(t *testing.T) {
		spec, err := r.Resolve("del")
		require.NoError(t, err)
		assert.Equal(t, KindNamed, spec.Kind)
		assert.Equal(t, privilege.Manager, spec.Required)

		spec, err = r.Resolve("disself")
		require.NoError(t, err)
		assert.Equal(t, KindNamed, spec.Kind)
		assert.Equal(t, privilege.BlueID, spec.Required)
	})

	t.Run("Grant variants carry the target level", func(t *testing.T) {
		cases := map[string]struct {
			level    privilege.Level
			required privilege.Level
		}{
			"speaker":   {privilege.Speaker, privilege.Manager},
			"manager":   {privilege.Manager, privilege.Moderator},
			"moderator": {privilege.Moderator, privilege.Summit},
			"summit":    {privilege.Summit, privilege.AdminOp},
		}
		for name, want := range cases {
			spec, err := r.Resolve(name)
			require.NoError(t, err, name)
			assert.Equal(t, KindGrant, spec.Kind, name)
			assert.Equal(t, want.level, spec.Level, name)
			assert.Equal(t, want.required, spec.Required, name)
		}
	})

	t.Run("Demote variants expand the dis prefix", func(t *testing.T) {
		cases := map[string]struct {
			level    privilege.Level
			required privilege.Level
		}{
			"disspeaker":   {privilege.Speaker, privilege.Manager},
			"dismanager":   {privilege.Manager, privilege.Summit},
			"dismoderator": {privilege.Moderator, privilege.Summit},
			"dissummit":    {privilege.Summit, privilege.AdminOp},
		}
		for name, want := range cases {
			spec, err := r.Resolve(name)
			require.NoError(t, err, name)
			assert.Equal(t, KindDemote, spec.Kind, name)
			assert.Equal(t, want.level, spec.Level, name)
			assert.Equal(t, want.required, spec.Required, name)
		}
	})

	t.Run("Console-only names are not unknown", func(t *testing.T) {
		_, err := r.Resolve("admin_op")
		assert.ErrorIs(t, err, ErrConsoleOnly)

		_, err = r.Resolve("disadmin_op")
		assert.ErrorIs(t, err, ErrConsoleOnly)
	})

	t.Run("Unknown names", func(t *testing.T) {
		for _, name := range []string{"", "disblue_id", "blue_id", "adminop", "ng"} {
			_, err := r.Resolve(name)
			assert.ErrorIs(t, err, ErrUnknownCommand, name)
		}
	})

	t.Run("Word filter names are case-sensitive", func(t *testing.T) {
		_, err := r.Resolve("NG")
		assert.NoError(t, err)
		_, err = r.Resolve("OK")
		assert.NoError(t, err)
		_, err = r.Resolve("ok")
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})
}
