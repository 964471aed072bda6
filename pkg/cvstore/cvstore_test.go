package cvstore_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/cvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*cvstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := cvstore.New(dir, "/uploads/")
	require.NoError(t, err)
	return store, dir
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestSaveWritesPDF(t *testing.T) {
	store, dir := newStore(t)

	content := []byte("%PDF-1.4 fake body")
	name, err := store.Save(context.Background(), &domain.CVUpload{
		Reader:      bytes.NewReader(content),
		Size:        int64(len(content)),
		Filename:    "My Resume.PDF",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".pdf"), "extension should be preserved lowercase, got %q", name)
	assert.NotContains(t, name, "My Resume", "original filename must not leak into the stored name")

	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, written)

	assert.Equal(t, "/uploads/"+name, store.PublicURL(name))
}

func TestSaveRejectsNonPDF(t *testing.T) {
	store, dir := newStore(t)

	_, err := store.Save(context.Background(), &domain.CVUpload{
		Reader:      strings.NewReader("MZ fake exe"),
		Size:        11,
		Filename:    "resume.exe",
		ContentType: "application/octet-stream",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only PDF files are allowed")
	assert.Empty(t, dirEntries(t, dir), "nothing should be written for a rejected upload")
}

func TestSaveRejectsOversizedDeclaration(t *testing.T) {
	store, dir := newStore(t)

	_, err := store.Save(context.Background(), &domain.CVUpload{
		Reader:      strings.NewReader("tiny"),
		Size:        cvstore.MaxFileSize + 1,
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
	assert.Empty(t, dirEntries(t, dir))
}

func TestSaveRejectsOversizedStream(t *testing.T) {
	store, dir := newStore(t)

	// Declared size lies; the stream itself is over the cap.
	oversized := bytes.Repeat([]byte("a"), cvstore.MaxFileSize+1)
	_, err := store.Save(context.Background(), &domain.CVUpload{
		Reader:      bytes.NewReader(oversized),
		Size:        1024,
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
	assert.Empty(t, dirEntries(t, dir), "the partial file should be removed")
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, _ := newStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		name, err := store.Save(context.Background(), &domain.CVUpload{
			Reader:      strings.NewReader("%PDF-1.4"),
			Size:        8,
			Filename:    "resume.pdf",
			ContentType: "application/pdf",
		})
		require.NoError(t, err)
		assert.False(t, seen[name], "generated name %q repeated", name)
		seen[name] = true
	}
}
