package locations_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"xplor/internal/locations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHome points the resolver at a temporary home directory.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

// moviesDirName is the platform's directory name for the movies location.
func moviesDirName() string {
	if runtime.GOOS == "darwin" {
		return "Movies"
	}
	return "Videos"
}

func TestParse(t *testing.T) {
	for _, name := range []string{"home", "desktop", "documents", "movies", "pictures", "music"} {
		loc, ok := locations.Parse(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, string(loc))
	}

	// Case-insensitive
	loc, ok := locations.Parse("Documents")
	assert.True(t, ok)
	assert.Equal(t, locations.Documents, loc)

	// Unknown names are rejected
	_, ok = locations.Parse("downloads")
	assert.False(t, ok)
	_, ok = locations.Parse("")
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Home", locations.Home.Title())
	assert.Equal(t, "Documents", locations.Documents.Title())
	assert.Equal(t, "Movies", locations.Movies.Title())
}

func TestIconName(t *testing.T) {
	assert.Equal(t, "home.svg", locations.Home.IconName())
	assert.Equal(t, "pictures.svg", locations.Pictures.IconName())
}

func TestAll(t *testing.T) {
	all := locations.All()
	require.Len(t, all, 6)
	assert.Equal(t, locations.Home, all[0])
	assert.Equal(t, locations.Desktop, all[1])
	assert.Equal(t, locations.Documents, all[2])
	assert.Equal(t, locations.Movies, all[3])
	assert.Equal(t, locations.Pictures, all[4])
	assert.Equal(t, locations.Music, all[5])
}

func TestResolver(t *testing.T) {
	t.Run("home resolves to the user home", func(t *testing.T) {
		home := fakeHome(t)
		r := locations.NewResolver(nil)

		path, ok := r.First(locations.Home)
		require.True(t, ok)
		assert.Equal(t, home, path)
	})

	t.Run("existing standard dirs resolve", func(t *testing.T) {
		home := fakeHome(t)
		expected := map[locations.Location]string{
			locations.Desktop:   "Desktop",
			locations.Documents: "Documents",
			locations.Movies:    moviesDirName(),
			locations.Pictures:  "Pictures",
			locations.Music:     "Music",
		}
		for _, name := range expected {
			require.NoError(t, os.Mkdir(filepath.Join(home, name), 0755))
		}

		r := locations.NewResolver(nil)
		for loc, name := range expected {
			path, ok := r.First(loc)
			require.True(t, ok, string(loc))
			assert.Equal(t, filepath.Join(home, name), path, string(loc))
		}
	})

	t.Run("missing directories resolve empty", func(t *testing.T) {
		fakeHome(t)
		r := locations.NewResolver(nil)

		paths := r.Resolve(locations.Pictures)
		assert.Empty(t, paths)

		_, ok := r.First(locations.Pictures)
		assert.False(t, ok)
	})

	t.Run("override wins over platform resolution", func(t *testing.T) {
		home := fakeHome(t)
		require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0755))
		override := t.TempDir()

		r := locations.NewResolver(map[string]string{"documents": override})
		path, ok := r.First(locations.Documents)
		require.True(t, ok)
		assert.Equal(t, override, path)
	})

	t.Run("override pointing nowhere resolves empty", func(t *testing.T) {
		home := fakeHome(t)
		require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0755))

		r := locations.NewResolver(map[string]string{"documents": filepath.Join(home, "gone")})
		_, ok := r.First(locations.Documents)
		assert.False(t, ok)
	})

	t.Run("unknown override names are ignored", func(t *testing.T) {
		home := fakeHome(t)
		require.NoError(t, os.Mkdir(filepath.Join(home, "Music"), 0755))

		r := locations.NewResolver(map[string]string{"downloads": "/tmp"})
		path, ok := r.First(locations.Music)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(home, "Music"), path)
	})
}

func TestXDGUserDirs(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG user dirs are linux-only")
	}

	home := fakeHome(t)
	xdgDocs := filepath.Join(home, "Paperwork")
	require.NoError(t, os.Mkdir(xdgDocs, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config"), 0755))

	userDirs := `# XDG user directories
XDG_DOCUMENTS_DIR="$HOME/Paperwork"
XDG_PICTURES_DIR="relative/ignored"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config", "user-dirs.dirs"), []byte(userDirs), 0644))

	r := locations.NewResolver(nil)

	// Configured XDG dir wins
	path, ok := r.First(locations.Documents)
	require.True(t, ok)
	assert.Equal(t, xdgDocs, path)

	// Relative XDG entries are ignored; conventional fallback applies
	require.NoError(t, os.Mkdir(filepath.Join(home, "Pictures"), 0755))
	path, ok = r.First(locations.Pictures)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, "Pictures"), path)
}
