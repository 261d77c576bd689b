package dictionary

import (
	"errors"
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoadRoundTrip(t *testing.T) {
	const kind Kind = "registry-test-kind"
	want := &Dictionary{}
	var gotDir string
	Register(kind, func(dir string) (*Dictionary, error) {
		gotDir = dir
		return want, nil
	})

	got, err := Load(kind, "/some/path")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, "/some/path", gotDir)
}

func TestLoadUnregisteredKind(t *testing.T) {
	_, err := Load(Kind("never-registered-kind"), "/tmp")
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.DictionaryNotFound))
}

func TestLoadPropagatesLoaderError(t *testing.T) {
	const kind Kind = "registry-test-kind-err"
	sentinel := errors.New("boom")
	Register(kind, func(dir string) (*Dictionary, error) {
		return nil, sentinel
	})

	_, err := Load(kind, "/tmp")
	require.Error(t, err)
	assert.Equal(t, sentinel, err)
}
