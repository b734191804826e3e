package profile

import (
	"testing"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("profiles_in_file_order", func(t *testing.T) {
		text := "[Zeta]\nLocation0=/z\n\n[Alpha]\nLocation0=/a\n\n[Mid]\nLocation0=/m\n"

		profiles, err := Parse(text)
		require.NoError(t, err)
		require.Len(t, profiles, 3)
		assert.Equal(t, "Zeta", profiles[0].Name)
		assert.Equal(t, "Alpha", profiles[1].Name)
		assert.Equal(t, "Mid", profiles[2].Name)
	})

	t.Run("values_keep_backslashes_and_hashes", func(t *testing.T) {
		text := "[Locations]\r\nLocation0 = C:\\C#\\Managed Libraries ; not a comment\r\n"

		profiles, err := Parse(text)
		require.NoError(t, err)
		value, ok := profiles[0].Get("Location0")
		require.True(t, ok)
		assert.Equal(t, `C:\C#\Managed Libraries ; not a comment`, value)
	})

	t.Run("repeated_section_names_stay_separate", func(t *testing.T) {
		text := "[A]\r\nLocation0=/one/lib\r\n[B]\r\nLocation0=/two/lib\r\n[A]\r\nLocation0=/three/lib\r\n"

		profiles, err := Parse(text)
		require.NoError(t, err)
		require.Len(t, profiles, 3)
		assert.Equal(t, []string{"A", "B", "A"}, []string{profiles[0].Name, profiles[1].Name, profiles[2].Name})

		last, err := Last(profiles)
		require.NoError(t, err)
		value, ok := last.Get("Location0")
		require.True(t, ok)
		assert.Equal(t, "/three/lib", value)
	})

	t.Run("trailing_backslash_does_not_join_lines", func(t *testing.T) {
		text := "[Locations]\r\nLocation1=C:\\Other\\\r\nLocation0=/data/Example/Libraries\r\n"

		profiles, err := Parse(text)
		require.NoError(t, err)
		require.Len(t, profiles, 1)

		value, ok := profiles[0].Get("Location1")
		require.True(t, ok)
		assert.Equal(t, `C:\Other\`, value)

		value, ok = profiles[0].Get("Location0")
		require.True(t, ok)
		assert.Equal(t, "/data/Example/Libraries", value)
	})

	t.Run("keys_are_case_insensitive", func(t *testing.T) {
		profiles, err := Parse("[p]\nLOCATION0=/x\n")
		require.NoError(t, err)
		value, ok := profiles[0].Get("Location0")
		assert.True(t, ok)
		assert.Equal(t, "/x", value)
	})

	t.Run("keys_outside_sections_are_not_a_profile", func(t *testing.T) {
		_, err := Parse("Location0=/x\n")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
	})

	t.Run("empty_file", func(t *testing.T) {
		_, err := Parse("")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
	})
}

func TestLast(t *testing.T) {
	profiles := []Profile{{Name: "b"}, {Name: "a"}, {Name: "c"}}

	last, err := Last(profiles)
	require.NoError(t, err)
	assert.Equal(t, "c", last.Name)

	_, err = Last(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestLoad(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	raw, err := Encode("[First]\nLocation0=/one\n[Second]\nLocation0=/two\n", UTF16LE)
	require.NoError(t, err)
	require.NoError(t, fsys.MkdirAll("/app/Settings", 0755))
	require.NoError(t, fsys.WriteFile("/app/Settings/RepositoryLocations.ini", raw, 0644))

	doc, err := Load(fsys, "/app/Settings/RepositoryLocations.ini")
	require.NoError(t, err)
	assert.Equal(t, UTF16LE, doc.Encoding)

	last, err := doc.Last()
	require.NoError(t, err)
	assert.Equal(t, "Second", last.Name)

	_, err = Load(fsys, "/app/Settings/missing.ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
