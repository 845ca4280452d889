package pathcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   uint64
		wantOK bool
	}{
		{name: "lowercase", input: "a1b2c3d4e5f60789", want: 0xa1b2c3d4e5f60789, wantOK: true},
		{name: "uppercase", input: "A1B2C3D4E5F60789", want: 0xa1b2c3d4e5f60789, wantOK: true},
		{name: "short", input: "1f", want: 0x1f, wantOK: true},
		{name: "max value", input: "ffffffffffffffff", want: ^uint64(0), wantOK: true},
		{name: "overflow", input: "1ffffffffffffffff"},
		{name: "word", input: "readme"},
		{name: "empty", input: ""},
		{name: "prefix", input: "0x1f"},
		{name: "sign", input: "+1f"},
		{name: "negative", input: "-1f"},
		{name: "separator", input: "1_f"},
		{name: "archive suffix only", input: "_fpk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "a1b2c3d4e5f60789", Format(0xa1b2c3d4e5f60789))
	assert.Equal(t, "1f", Format(0x1f), "no zero padding")

	v, ok := Parse("00000000000ABCDE")
	require.True(t, ok)
	assert.Equal(t, "abcde", Format(v), "parse then format canonicalizes case and width")
}

func TestPathCode64(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, PathCode64.Sum64("/Assets/tpp/pack/player.fpk"), PathCode64.Sum64("/Assets/tpp/pack/player.fpk"))
	})

	t.Run("extension is ignored", func(t *testing.T) {
		assert.Equal(t, PathCode64.Sum64("/Assets/tpp/pack/player"), PathCode64.Sum64("/Assets/tpp/pack/player.fpk"))
		assert.Equal(t, PathCode64.Sum64("/Assets/tpp/pack/player"), PathCode64.Sum64("/Assets/tpp/pack/player.fpk.d"))
	})

	t.Run("fits the masked width", func(t *testing.T) {
		for _, text := range []string{"", "a", "/Assets/tpp/level/mission2/story", "/tpptest/x", "characters/hero"} {
			assert.Zero(t, PathCode64.Sum64(text)&^(pathHashMask|MetaFlag), text)
		}
	})

	t.Run("meta flag", func(t *testing.T) {
		assert.Zero(t, PathCode64.Sum64("/Assets/tpp/pack/player")&MetaFlag)
		assert.NotZero(t, PathCode64.Sum64("/Assets/tpptest/pack/player")&MetaFlag)
		assert.NotZero(t, PathCode64.Sum64("/tpp/pack/player")&MetaFlag)
	})

	t.Run("leading separators are trimmed", func(t *testing.T) {
		assert.Equal(t, PathCode64.Sum64("tpp/pack/player"), PathCode64.Sum64("//tpp/pack/player"))
	})

	t.Run("assets prefix only differs by meta flag", func(t *testing.T) {
		inside := PathCode64.Sum64("/Assets/tpp/pack/player")
		outside := PathCode64.Sum64("tpp/pack/player")
		assert.Equal(t, inside|MetaFlag, outside)
	})
}

func TestPathCode64_KnownValues(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		// 33 to 64 byte input
		{text: "/Assets/tpp/pack/mission2/free/f30010/f30010.fpk", want: "19386a4e252f1"},
		// same path outside /Assets/ differs only by the meta flag
		{text: "tpp/pack/mission2/free/f30010/f30010", want: "59386a4e252f1"},
		// 17 to 32 bytes, tpptest keeps the meta flag
		{text: "/Assets/tpptest/pack/test.fpk", want: "4e603f96cb7a9"},
		// 8 to 16 bytes
		{text: "characters/hero", want: "487fcbe750807"},
		{text: "/Assets/tpp/ui/a.ftex", want: "1595011c2e04f"},
		// under 4 bytes
		{text: "x", want: "7b815f999656c"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(PathCode64, tt.text))
		})
	}
}

func TestStrCode64(t *testing.T) {
	assert.Equal(t, StrCode64.Sum64("player"), StrCode64.Sum64("player"))
	assert.NotEqual(t, StrCode64.Sum64("player"), StrCode64.Sum64("player2"))
}

func TestByName(t *testing.T) {
	h, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Hash(PathCode64, "a/b"), Hash(h, "a/b"))

	h, err = ByName("StrCode64")
	require.NoError(t, err)
	assert.Equal(t, Hash(StrCode64, "a/b"), Hash(h, "a/b"))

	_, err = ByName("md5")
	assert.True(t, errors.Is(err, ErrUnknownHasher))
}

func TestHasherFunc(t *testing.T) {
	h := HasherFunc(func(string) uint64 { return 0xBEEF })
	assert.Equal(t, "beef", Hash(h, "anything"))
}
