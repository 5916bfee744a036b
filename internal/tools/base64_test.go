package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64_RoundTrip(t *testing.T) {
	inputs := []string{"", "a", "hello, world", "zażółć gęślą jaźń", "日本語テキスト", "emoji 🚀 ok", "<>?~"}
	for _, urlSafe := range []bool{false, true} {
		for _, in := range inputs {
			out, err := DecodeBase64(EncodeBase64(in, urlSafe), urlSafe)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		}
	}
}

func TestEncodeBase64_Alphabets(t *testing.T) {
	assert.Equal(t, "Pz4/", EncodeBase64("?>?", false))
	assert.Equal(t, "Pz4_", EncodeBase64("?>?", true))
}

func TestDecodeBase64_Lenient(t *testing.T) {
	out, err := DecodeBase64("aGVs\nbG8 ", false)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	out, err = DecodeBase64("aGk", false)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestDecodeBase64_Invalid(t *testing.T) {
	_, err := DecodeBase64("not*base64", false)
	assert.ErrorIs(t, err, ErrInvalidBase64)

	// 0xff 0xfe is not UTF-8
	_, err = DecodeBase64("//4=", false)
	assert.ErrorIs(t, err, ErrInvalidBase64)
}
