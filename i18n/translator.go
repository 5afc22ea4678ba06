package i18n

import "strings"

// Message codes used by the jsonkit CLI.
const (
	CodeOK              = "ok"
	CodeInvalidJSON     = "invalid_json"
	CodeValidationError = "validation_error"
	CodeMalformedSchema = "malformed_schema"
	CodeIOError         = "io_error"
	CodeReformatted     = "reformatted"
	CodeNeedsFormat     = "needs_format"
	CodeSummary         = "summary"
)

// Translator retrieves localized messages for message codes.
// data provides optional values substituted for "{name}" placeholders (for
// example "file" or "count").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		CodeOK:              "ok",
		CodeInvalidJSON:     "invalid JSON",
		CodeValidationError: "validation failed",
		CodeMalformedSchema: "malformed schema",
		CodeIOError:         "cannot read input",
		CodeReformatted:     "reformatted {file}",
		CodeNeedsFormat:     "{file} is not canonically formatted",
		CodeSummary:         "{failed} of {total} files failed",
	},
	"ja": {
		CodeOK:              "OK",
		CodeInvalidJSON:     "JSONが不正です",
		CodeValidationError: "検証に失敗しました",
		CodeMalformedSchema: "スキーマが不正です",
		CodeIOError:         "入力を読み込めません",
		CodeReformatted:     "{file} を整形しました",
		CodeNeedsFormat:     "{file} は正規形式ではありません",
		CodeSummary:         "{total} 件中 {failed} 件が失敗しました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
