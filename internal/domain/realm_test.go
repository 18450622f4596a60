package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFormatRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	formatted := FormatTime(ts)
	assert.Equal(t, "2024-03-01T12:30:45Z", formatted)

	parsed, err := ParseTime(formatted)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestFormatTimeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 1, 13, 30, 45, 0, loc)

	assert.Equal(t, "2024-03-01T12:30:45Z", FormatTime(ts))
}

func TestCreateRealmPortalValidate(t *testing.T) {
	valid := CreateRealmPortal{Name: "server", WorldName: "midgard", Password: "hunter22"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CreateRealmPortal
	}{
		{"missing name", CreateRealmPortal{WorldName: "midgard"}},
		{"missing world", CreateRealmPortal{Name: "server"}},
		{"unknown preset", CreateRealmPortal{Name: "server", WorldName: "midgard", Preset: "brutal"}},
		{"unknown modifier key", CreateRealmPortal{
			Name: "server", WorldName: "midgard",
			Modifiers: []WorldModifier{{Key: "weather", Value: "normal"}},
		}},
		{"invalid modifier value", CreateRealmPortal{
			Name: "server", WorldName: "midgard",
			Modifiers: []WorldModifier{{Key: "combat", Value: "impossible"}},
		}},
		{"unknown world key", CreateRealmPortal{
			Name: "server", WorldName: "midgard", Keys: []string{"godmode"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestCreateRealmPortalValidateAcceptsKnownOptions(t *testing.T) {
	req := CreateRealmPortal{
		Name:      "server",
		WorldName: "midgard",
		Preset:    "hardcore",
		Modifiers: []WorldModifier{
			{Key: "combat", Value: "veryhard"},
			{Key: "raids", Value: "none"},
		},
		Keys: []string{"nomap", "passivemobs"},
	}
	require.NoError(t, req.Validate())
}

// Password length is checked by the portal lifecycle, not here.
func TestCreateRealmPortalValidateIgnoresPassword(t *testing.T) {
	req := CreateRealmPortal{Name: "server", WorldName: "midgard", Password: "x"}
	require.NoError(t, req.Validate())
}

func TestCloseRealmPortalValidate(t *testing.T) {
	valid := CloseRealmPortal{PortalGUID: "p-1", InstanceID: "i-1", SpotRequestID: "sir-1"}
	require.NoError(t, valid.Validate())

	var validation *ValidationError
	require.ErrorAs(t, (&CloseRealmPortal{InstanceID: "i-1", SpotRequestID: "sir-1"}).Validate(), &validation)
	require.ErrorAs(t, (&CloseRealmPortal{PortalGUID: "p-1", SpotRequestID: "sir-1"}).Validate(), &validation)
	require.ErrorAs(t, (&CloseRealmPortal{PortalGUID: "p-1", InstanceID: "i-1"}).Validate(), &validation)
}

func TestValidateListFileName(t *testing.T) {
	for _, name := range []string{"adminlist.txt", "permittedlist.txt", "bannedlist.txt"} {
		assert.NoError(t, ValidateListFileName(name))
	}

	var validation *ValidationError
	require.ErrorAs(t, ValidateListFileName("adminlist.TXT"), &validation)
	require.ErrorAs(t, ValidateListFileName("../adminlist.txt"), &validation)
	require.ErrorAs(t, ValidateListFileName(""), &validation)
}

func TestAccountDTOStripsPassword(t *testing.T) {
	account := Account{GUID: "u-1", Username: "odin", Password: "hash", CreatedAt: time.Now()}
	dto := account.DTO()
	assert.Equal(t, "u-1", dto.GUID)
	assert.Equal(t, "odin", dto.Username)
}
