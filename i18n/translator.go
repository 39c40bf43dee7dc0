package i18n

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides the values substituted into the message template (for
// example "expected", "name" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogue = map[string]map[string]string{
	"en": {
		"invalid_type":  "invalid type, expected {expected} got {actual}",
		"too_small":     "value below minimum {value} < {minimum}",
		"too_big":       "value above maximum {value} > {maximum}",
		"invalid_enum":  "invalid enum '{value}' not in {allowed}",
		"required":      "missing required property '{name}'",
		"read_only":     "read only property '{name}'",
		"unknown_key":   "unknown property '{name}'",
		"one_of":        "invalid oneOf, no schemas match input",
		"too_short":     "not enough items {count} < {min}",
		"too_long":      "too many items {count} > {max}",
		"invalid_value": "invalid value: {reason}",
		"duplicate_key": "key '{key}' duplicated",
		"parse_error":   "parse error: {reason}",
		"truncated":     "input truncated: {reason}",
	},
	"ja": {
		"invalid_type":  "型が不正です (期待値 {expected}, 実際 {actual})",
		"too_small":     "最小値を下回っています {value} < {minimum}",
		"too_big":       "最大値を超えています {value} > {maximum}",
		"invalid_enum":  "列挙値 '{value}' は {allowed} に含まれません",
		"required":      "必須プロパティ '{name}' が不足しています",
		"read_only":     "読み取り専用プロパティ '{name}' です",
		"unknown_key":   "未知のプロパティ '{name}' です",
		"one_of":        "oneOf のいずれのスキーマにも一致しません",
		"too_short":     "要素数が不足しています {count} < {min}",
		"too_long":      "要素数が多すぎます {count} > {max}",
		"invalid_value": "値が不正です: {reason}",
		"duplicate_key": "キー '{key}' が重複しています",
		"parse_error":   "解析エラー: {reason}",
		"truncated":     "入力が打ち切られました: {reason}",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogue[t.lang][code]
	if !ok {
		if tmpl, ok = catalogue["en"][code]; !ok {
			return code
		}
	}
	return expand(tmpl, data)
}

// expand replaces {key} placeholders with data values. Placeholders without
// data are left as they are.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type translatorBox struct{ tr Translator }

// current may be swapped while validations run on other goroutines.
var current atomic.Pointer[translatorBox]

func init() { current.Store(&translatorBox{tr: dictTranslator{lang: "en"}}) }

// Languages lists the built-in catalogues.
func Languages() []string {
	out := make([]string, 0, len(catalogue))
	for l := range catalogue {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := catalogue[lang]; !ok {
		lang = "en"
	}
	current.Store(&translatorBox{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&translatorBox{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().tr.Message(code, data)
}
