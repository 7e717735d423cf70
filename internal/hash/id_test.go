package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ColumnID(tt.data))
		})
	}
}

func TestColumnID_Distinct(t *testing.T) {
	seen := make(map[uint64]string)
	for _, name := range []string{"patents", "age", "age_sq", "region", "iscustomer", "intercept"} {
		id := ColumnID(name)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision between %q and %q", prev, name)
		}
		seen[id] = name
	}
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	r := rand.New(rand.NewSource(42))
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkColumnID(b *testing.B) {
	s := randString(20)
	b.ResetTimer()
	for b.Loop() {
		ColumnID(s)
	}
}
