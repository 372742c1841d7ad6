package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// GenerateSlug 把工作周名称转换为 URL 友好的标识，汉字转换为拼音
func GenerateSlug(name string) string {
	var parts []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			parts = append(parts, word.String())
			word.Reset()
		}
	}

	for _, r := range name {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			parts = append(parts, pinyin.LazyConvert(string(r), nil)...)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			word.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()

	return strings.Join(parts, "-")
}
