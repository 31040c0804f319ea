package domain

import "strings"

// Language is a language accepted by the execution service.
type Language string

const (
	LanguageJava       Language = "java"
	LanguagePython     Language = "python"
	LanguageC          Language = "c"
	LanguageCpp        Language = "cpp"
	LanguageJavaScript Language = "javascript"
	LanguageR          Language = "r"
	LanguageMySQL      Language = "mysql"
	LanguageSQL        Language = "sql"
)

const DefaultLanguage = LanguageCpp

var SupportedLanguages = []Language{
	LanguageJava,
	LanguagePython,
	LanguageC,
	LanguageCpp,
	LanguageJavaScript,
	LanguageR,
	LanguageMySQL,
	LanguageSQL,
}

var starterCode = map[Language]string{
	LanguageJava:       "public class Main {\n  public static void main(String[] args) {\n    // Write your solution here\n    System.out.println(\"Hello, World!\");\n  }\n}",
	LanguagePython:     "# Write your solution here\nprint(\"Hello, World!\")",
	LanguageC:          "#include <stdio.h>\nint main(){\n  // Write your solution here\n  printf(\"Hello, World!\\n\");\n  return 0;\n}",
	LanguageCpp:        "#include <iostream>\nusing namespace std;\n\nint main() {\n  // Write your solution here\n  cout << \"Hello, World!\" << endl;\n  return 0;\n}",
	LanguageJavaScript: "// Write your solution here\nconsole.log(\"Hello, World!\");",
	LanguageR:          "# Write your solution here\nprint(\"Hello, World!\")",
	LanguageMySQL:      "-- Write your MySQL query here\nSELECT 'Hello, World!' AS message;",
	LanguageSQL:        "-- Write your SQL query here\nSELECT 'Hello, World!' AS message;",
}

// ParseLanguage normalizes name and reports whether it is supported.
func ParseLanguage(name string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	_, ok := starterCode[lang]
	return lang, ok
}

// StarterCode returns the editor template for lang, or "" if unknown.
func StarterCode(lang Language) string {
	return starterCode[lang]
}
