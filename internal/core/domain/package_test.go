package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/core/domain"
)

func TestParsePackageNv(t *testing.T) {
	tests := []struct {
		text string
		want domain.PackageNv
	}{
		{"cowsay@1.5.0", domain.PackageNv{Name: "cowsay", Version: "1.5.0"}},
		{"@types/node@20.1.0", domain.PackageNv{Name: "@types/node", Version: "20.1.0"}},
		{"form@1.0.0_1", domain.PackageNv{Name: "form", Version: "1.0.0", CopyIndex: 1}},
		{"@scope/form@2.0.0_3", domain.PackageNv{Name: "@scope/form", Version: "2.0.0", CopyIndex: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			nv, err := domain.ParsePackageNv(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, nv)
			assert.Equal(t, tt.text, nv.String())
		})
	}
}

func TestParsePackageNv_Invalid(t *testing.T) {
	for _, text := range []string{"", "plain", "@scope/pkg", "name@", "@1.0.0"} {
		t.Run(text, func(t *testing.T) {
			_, err := domain.ParsePackageNv(text)
			require.ErrorIs(t, err, domain.ErrInvalidPackageNv)
		})
	}
}

func TestParseNpmSpecifier(t *testing.T) {
	tests := []struct {
		text string
		want domain.NpmSpecifier
	}{
		{"cowsay", domain.NpmSpecifier{Name: "cowsay"}},
		{"cowsay@^1.5.0", domain.NpmSpecifier{Name: "cowsay", Range: "^1.5.0"}},
		{"npm:chalk@5", domain.NpmSpecifier{Name: "chalk", Range: "5"}},
		{"npm:chalk", domain.NpmSpecifier{Name: "chalk"}},
		{"@types/node", domain.NpmSpecifier{Name: "@types/node"}},
		{"@types/node@~20.1.0", domain.NpmSpecifier{Name: "@types/node", Range: "~20.1.0"}},
		{"cowsay@latest", domain.NpmSpecifier{Name: "cowsay", Range: "latest"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			spec, err := domain.ParseNpmSpecifier(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestParseNpmSpecifier_Invalid(t *testing.T) {
	for _, text := range []string{"", "npm:", "@scope/@1.0.0"} {
		t.Run(text, func(t *testing.T) {
			_, err := domain.ParseNpmSpecifier(text)
			require.ErrorIs(t, err, domain.ErrInvalidSpecifier)
		})
	}
}
