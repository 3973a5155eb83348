package securefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// cheap KDF so tests stay fast
var testOpts = Options{
	KDF: Envelope{Version: 1, ArgonTime: 1, ArgonMemory: 1024, ArgonThreads: 1, ArgonKeyLen: 32},
	AAD: []byte("talentlayer:test:v1"),
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEncryptedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secret.json")
	in := payload{Name: "alice", Count: 3}

	require.NoError(t, WriteEncryptedJSON(path, in, []byte("correct horse"), testOpts))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "alice")

	out, err := ReadEncryptedJSON[payload](path, []byte("correct horse"), testOpts)
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = ReadEncryptedJSON[payload](path, []byte("wrong"), testOpts)
	require.True(t, errors.Is(err, ErrInvalidPasswordOrCorrupt))

	_, err = ReadEncryptedJSON[payload](path, []byte("correct horse"), Options{KDF: testOpts.KDF, AAD: []byte("other")})
	require.True(t, errors.Is(err, ErrInvalidPasswordOrCorrupt))

	_, err = ReadEncryptedJSON[payload](filepath.Join(t.TempDir(), "missing.json"), nil, testOpts)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEnvFolder(t *testing.T) {
	for in, want := range map[string]string{"": "", "prod": "", "LOCAL": "local", "dev": "develop"} {
		t.Setenv("TL_ENV", in)
		got, err := EnvFolder()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	t.Setenv("TL_ENV", "staging")
	_, err := EnvFolder()
	require.Error(t, err)
}
