package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserDictionarySimpleAdapter(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "user.csv")
	content := "東京スカイツリー,名詞,トウキョウスカイツリー\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	opts := UserDictionaryOptions{
		Adapter:         AdapterSimple,
		SimpleWordCost:  -9000,
		SimpleContextID: 3,
		Schema:          dictionary.DefaultIPADICSchema,
	}

	pd, err := BuildUserDictionary(csvPath, opts)
	require.NoError(t, err)
	assert.False(t, pd.IsSystem())

	entries, ok, err := pd.ExactMatch([]byte("東京スカイツリー"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, int16(-9000), entries[0].WordCost)
	assert.Equal(t, uint16(3), entries[0].LeftID)
	assert.Equal(t, uint16(3), entries[0].RightID)

	details, err := pd.Details(entries[0].WordID.ID)
	require.NoError(t, err)
	// pos, reading and base_form land where DefaultIPADICSchema names them;
	// everything else defaults to "*".
	posIdx, _ := dictionary.DefaultIPADICSchema.FieldIndex("pos")
	readingIdx, _ := dictionary.DefaultIPADICSchema.FieldIndex("reading")
	baseFormIdx, _ := dictionary.DefaultIPADICSchema.FieldIndex("base_form")
	assert.Equal(t, "名詞", details[posIdx-4])
	assert.Equal(t, "トウキョウスカイツリー", details[readingIdx-4])
	assert.Equal(t, "東京スカイツリー", details[baseFormIdx-4])
}

func TestBuildUserDictionaryDetailedAdapter(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "user.csv")
	content := "新宿,1,1,-500,名詞,固有名詞,*,*,*,*,新宿,シンジュク,シンジュク\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	opts := UserDictionaryOptions{Adapter: AdapterDetailed}
	pd, err := BuildUserDictionary(csvPath, opts)
	require.NoError(t, err)

	entries, ok, err := pd.ExactMatch([]byte("新宿"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int16(-500), entries[0].WordCost)

	details, err := pd.Details(entries[0].WordID.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"名詞", "固有名詞", "*", "*", "*", "*", "新宿", "シンジュク", "シンジュク"}, details)
}

func TestUserDictionaryBlobEncodeLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "user.csv")
	content := "新宿,1,1,-500,名詞,固有名詞,*,*,*,*,新宿,シンジュク,シンジュク\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	pd, err := BuildUserDictionary(csvPath, UserDictionaryOptions{Adapter: AdapterDetailed})
	require.NoError(t, err)

	raw := dictionary.EncodeUserDictionaryBlob(pd)
	blob, err := dictionary.EncodeBlob(dictionary.CompressIdentity, raw)
	require.NoError(t, err)
	outPath := filepath.Join(dir, "user.bin")
	require.NoError(t, os.WriteFile(outPath, blob, 0o644))

	loaded, err := dictionary.LoadUserDictionary(outPath)
	require.NoError(t, err)
	assert.False(t, loaded.IsSystem())

	entries, ok, err := loaded.ExactMatch([]byte("新宿"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int16(-500), entries[0].WordCost)
}
