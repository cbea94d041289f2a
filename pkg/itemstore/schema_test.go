package itemstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNamespace(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		wantErr   bool
	}{
		{"simple", "default", false},
		{"hyphenated", "team-radar", false},
		{"digits", "radar2025", false},
		{"single char", "a", false},
		{"empty", "", true},
		{"uppercase", "Default", true},
		{"leading hyphen", "-radar", true},
		{"trailing hyphen", "radar-", true},
		{"underscore", "team_radar", true},
		{"colon", "team:radar", true},
		{"too long", strings.Repeat("a", MaxNamespaceLength+1), true},
		{"max length", strings.Repeat("a", MaxNamespaceLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNamespace(tt.namespace)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "radar:default:item:abc", ItemKey("default", "abc"))
	assert.Equal(t, "radar:default:item:ab*", ItemKeyPattern("default", "ab"))
	assert.Equal(t, "radar:default:item_events", ItemEventsChannel("default"))
	assert.Equal(t, "radar:default:item_seq", ItemSeqKey("default"))
}

func TestHashToItem(t *testing.T) {
	item, err := HashToItem(map[string]string{
		"id":            "id-1",
		"name":          "Rust",
		"ring":          "Trial",
		"quadrant":      "Languages",
		"is_new":        "true",
		"created_at_ms": "1700000000000",
		"seq":           "7",
	})
	assert.NoError(t, err)
	assert.True(t, item.IsNew)
	assert.Equal(t, int64(1700000000000), item.CreatedAtMs)
	assert.Equal(t, int64(7), item.Seq)
	assert.Empty(t, item.Topic)

	_, err = HashToItem(map[string]string{"is_new": "maybe"})
	assert.Error(t, err)
}
