package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "sarb.backend/internal/domain/errors"
)

func TestStringList_JSON(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["a", " b ", ""]`), &l))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, json.Unmarshal([]byte(`"40% faster\n\n  fewer defects \r\n"`), &l))
	assert.Equal(t, StringList{"40% faster", "fewer defects"}, l)

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Nil(t, l)

	out, err := json.Marshal(struct {
		L StringList `json:"l"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"l":[]}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &l))
}

func TestParseStringList(t *testing.T) {
	assert.Equal(t, StringList{"a", "b"}, ParseStringList([]string{"a", "b", " "}))
	assert.Equal(t, StringList{"a", "b"}, ParseStringList([]string{"a\nb"}))
	assert.Equal(t, StringList{"x", "y"}, ParseStringList([]string{`["x","y"]`}))
	assert.Equal(t, StringList{"[not json"}, ParseStringList([]string{"[not json"}))
	assert.Equal(t, "a\nb", StringList{"a", "b"}.Join())
}

func TestParseIcon(t *testing.T) {
	cases := map[string]Icon{
		"smart_toy":     IconSmartToy,
		"SmartToy":      IconSmartToy,
		"CloudQueue":    IconCloudQueue,
		"rocket-launch": IconRocketLaunch,
		"Psychology":    IconPsychology,
		"":              IconCategory,
	}
	for in, want := range cases {
		got, err := ParseIcon(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseIcon("unicorn")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	assert.Equal(t, IconCategory, ResolveIcon("unicorn"))
	assert.Equal(t, IconSpeed, ResolveIcon("Speed"))
	assert.Contains(t, Icons(), IconBalance)
}

func TestTeamMember_LegacyRole(t *testing.T) {
	var m TeamMember
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Ana","role":"CTO"}`), &m))
	assert.Equal(t, "CTO", m.Position)
	assert.Equal(t, int64(3), m.GetID())

	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Ana","position":"CEO","role":"CTO"}`), &m))
	assert.Equal(t, "CEO", m.Position)

	role := "Advisor"
	assert.Equal(t, &role, TeamMemberInput{Role: &role}.PositionValue())
}

func TestService_LegacyTitle(t *testing.T) {
	var s Service
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"Consulting","features":"a\nb"}`), &s))
	assert.Equal(t, "Consulting", s.Name)
	assert.Equal(t, StringList{"a", "b"}, s.Features)

	title := "Audit"
	assert.Equal(t, &title, ServiceInput{Title: &title}.NameValue())
}
