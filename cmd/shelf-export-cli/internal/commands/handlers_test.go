//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/MGTheTrain/shelf-export/internal/api/rest/v1"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/archive"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "shelf-export-cli", SilenceUsage: true, SilenceErrors: true}
	rootCmd.PersistentFlags().String("config", "", "")
	require.NoError(t, InitCommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestArchive(t *testing.T, dir string) string {
	t.Helper()
	bundle := exports.NewBundle()
	bundle.User.Username = "mouse"
	bundle.Follows = []string{"https://example.com/user/cat"}
	bundle.Books = append(bundle.Books, exports.NewBookEntry(&library.Edition{
		BookID: 1,
		Book:   &library.Book{ID: 1, Title: "The Hobbit"},
	}))
	data, err := exports.EncodeBundle(bundle)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := archive.NewWriter(&buf)
	require.NoError(t, w.WriteBundle(data))
	require.NoError(t, w.AddImage("covers/hobbit.jpg", []byte("cover")))
	require.NoError(t, w.Close())

	return testutil.WriteTestFile(t, dir, "export.tar.gz", buf.Bytes())
}

func TestInspectCmd(t *testing.T) {
	path := writeTestArchive(t, t.TempDir())

	out, err := executeCommand(t, "inspect", "--input-file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "user: mouse")
	assert.Contains(t, out, "books: 1")
	assert.Contains(t, out, "  - The Hobbit")
	assert.Contains(t, out, "follows: 1")
	assert.Contains(t, out, "images: 1")
	assert.Contains(t, out, "  - covers/hobbit.jpg (5 bytes)")
}

func TestInspectCmd_NotAnArchive(t *testing.T) {
	path := testutil.WriteTestFile(t, t.TempDir(), "plain.txt", []byte("hello"))

	_, err := executeCommand(t, "inspect", "--input-file", path)
	assert.Error(t, err)
}

func TestInspectCmd_MissingFlag(t *testing.T) {
	_, err := executeCommand(t, "inspect")
	assert.ErrorContains(t, err, "input-file")
}

func TestTokenCmd(t *testing.T) {
	dir := t.TempDir()
	configPath := testutil.WriteTestFile(t, dir, "app.yaml", []byte(strings.Join([]string{
		"auth:",
		"  jwt_secret: 0123456789abcdef0123456789abcdef",
		"  issuer: books.example.com",
		"media_storage:",
		"  root_dir: " + filepath.Join(dir, "media"),
		"export_storage:",
		"  root_dir: " + filepath.Join(dir, "exports"),
	}, "\n")))

	out, err := executeCommand(t, "token", "--config", configPath, "--user-id", "9")
	require.NoError(t, err)

	claims, err := v1.NewJWTManager("0123456789abcdef0123456789abcdef", "books.example.com").Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
}

func TestTokenCmd_NoSecret(t *testing.T) {
	t.Setenv("SHELF_EXPORT_AUTH_JWT_SECRET", "")
	_, err := executeCommand(t, "token", "--user-id", "9")
	assert.ErrorContains(t, err, "AuthSettings")
}

func TestPruneCmd_NoRetention(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHELF_EXPORT_EXPORT_RETENTION_DAYS", "0")
	t.Setenv("SHELF_EXPORT_MEDIA_STORAGE_ROOT_DIR", filepath.Join(dir, "media"))
	t.Setenv("SHELF_EXPORT_EXPORT_STORAGE_ROOT_DIR", filepath.Join(dir, "exports"))

	_, err := executeCommand(t, "prune")
	assert.ErrorContains(t, err, "no retention configured")
	_, statErr := os.Stat(filepath.Join(dir, "exports"))
	assert.True(t, os.IsNotExist(statErr))
}
