package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		wantDomain    string
		wantQualifier Qualifier
		wantAction    string
		wantErr       bool
	}{
		{
			name:          "Success_TwoSegments",
			code:          "tenant.view",
			wantDomain:    "tenant",
			wantQualifier: QualifierNone,
			wantAction:    "view",
		},
		{
			name:          "Success_OwnQualifier",
			code:          "reservations.own.view",
			wantDomain:    "reservations",
			wantQualifier: QualifierOwn,
			wantAction:    "view",
		},
		{
			name:          "Success_AllQualifier",
			code:          "documents.all.export",
			wantDomain:    "documents",
			wantQualifier: QualifierAll,
			wantAction:    "export",
		},
		{
			name:    "Error_SingleSegment",
			code:    "tenant",
			wantErr: true,
		},
		{
			name:    "Error_FourSegments",
			code:    "a.own.b.c",
			wantErr: true,
		},
		{
			name:    "Error_UnknownQualifier",
			code:    "reservations.some.view",
			wantErr: true,
		},
		{
			name:    "Error_EmptyDomain",
			code:    ".view",
			wantErr: true,
		},
		{
			name:    "Error_EmptyAction",
			code:    "tenant.",
			wantErr: true,
		},
		{
			name:    "Error_EmptyCode",
			code:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain, qualifier, action, err := ParseCode(tt.code)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDomain, domain)
			assert.Equal(t, tt.wantQualifier, qualifier)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Run("Success_KnownCode", func(t *testing.T) {
		c, ok := Lookup("machines.dispatch")

		require.True(t, ok)
		assert.Equal(t, "machines", c.Domain)
		assert.Equal(t, RiskCritical, c.Risk)
		assert.True(t, c.RequiresHumanSupervision)
		assert.True(t, c.RequiresSafetyCertification)
		assert.Equal(t, "autonomous_dispatch", c.CertificationCode)
	})

	t.Run("Error_UnknownCode", func(t *testing.T) {
		_, ok := Lookup("reservations.teleport")

		assert.False(t, ok)
	})
}

func TestSafetyFlagged(t *testing.T) {
	t.Run("Success_SupervisionOnly", func(t *testing.T) {
		c, ok := Lookup("machines.operate")

		require.True(t, ok)
		assert.True(t, c.SafetyFlagged())
		assert.True(t, c.RequiresHumanSupervision)
		assert.False(t, c.RequiresSafetyCertification)
	})

	t.Run("Success_EmergencyStopUngated", func(t *testing.T) {
		c, ok := Lookup("machines.emergency_stop")

		require.True(t, ok)
		assert.False(t, c.SafetyFlagged())
	})

	t.Run("Success_OrdinaryCapability", func(t *testing.T) {
		c, ok := Lookup("jobs.create")

		require.True(t, ok)
		assert.False(t, c.SafetyFlagged())
	})
}

func TestAll(t *testing.T) {
	all := All()

	require.NotEmpty(t, all)

	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].Code < all[j].Code
	}))

	// Every entry round-trips through ParseCode with the derived fields intact.
	for _, c := range all {
		domain, qualifier, action, err := ParseCode(c.Code)
		require.NoError(t, err, c.Code)
		assert.Equal(t, c.Domain, domain, c.Code)
		assert.Equal(t, c.Qualifier, qualifier, c.Code)
		assert.Equal(t, c.Action, action, c.Code)

		if c.RequiresSafetyCertification {
			assert.NotEmpty(t, c.CertificationCode, c.Code)
		} else {
			assert.Empty(t, c.CertificationCode, c.Code)
		}
	}
}
