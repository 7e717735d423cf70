package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Limit int
	Name  string
	Calls []string
}

func withLimit(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n <= 0 {
			return errors.New("limit must be positive")
		}
		c.Limit = n
		c.Calls = append(c.Calls, "limit")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.Name = name
		c.Calls = append(c.Calls, "name")
	})
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg, withLimit(10), withName("poisson"))
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Limit)
	require.Equal(t, "poisson", cfg.Name)
	require.Equal(t, []string{"limit", "name"}, cfg.Calls)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg, withName("a"), withLimit(0), withName("b"))
	require.EqualError(t, err, "limit must be positive")
	require.Equal(t, "a", cfg.Name)
	require.Equal(t, []string{"name"}, cfg.Calls)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, Apply[*testConfig](cfg, nil, withName("x")))
	require.Equal(t, "x", cfg.Name)
}

func TestApply_Empty(t *testing.T) {
	cfg := &testConfig{Limit: 3}
	require.NoError(t, Apply(cfg))
	require.Equal(t, 3, cfg.Limit)
}
