package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestJSONCommand(t *testing.T) {
	out, err := execute(t, "", "json", `{"a":[1]}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", out)

	out, err = execute(t, "{ \"a\" : 1 }\n", "json", "--minify")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", out)

	_, err = execute(t, "", "json", "--validate", "{")
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestBase64Command(t *testing.T) {
	out, err := execute(t, "", "base64", "hello")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", out)

	out, err = execute(t, "", "base64", "-d", "aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestHashCommand(t *testing.T) {
	out, err := execute(t, "", "hash", "-a", "md5", "abc")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72\n", out)

	out, err = execute(t, "", "hash", "abc")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)

	_, err = execute(t, "", "hash", "-a", "crc", "abc")
	assert.Error(t, err)
}

func TestUUIDCommand(t *testing.T) {
	out, err := execute(t, "", "uuid", "-n", "3", "--upper")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Regexp(t, `^[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`, l)
	}

	_, err = execute(t, "", "uuid", "-n", "0")
	assert.Error(t, err)
}

func TestTimestampCommand(t *testing.T) {
	out, err := execute(t, "", "timestamp", "--tz", "UTC", "1700000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "unix:      1700000000\n")
	assert.Contains(t, out, "iso8601:   2023-11-14T22:13:20.000Z\n")
}

func TestSQLCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("select * from t where id = 1\n"), 0o600))

	out, err := execute(t, "", "sql", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "select *\nfrom t\nwhere id = 1\n", out)
}
