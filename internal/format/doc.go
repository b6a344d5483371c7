// Package format prints the JavaScript AST back to source text.
//
// Назначение: печать программы после понижения JSX (compile), печать
// выражений для сообщений и тестов.
// Режимы: pretty (отступ 2 пробела) и minify (без лишних пробелов и переводов строк).
// Не делает: сохранения комментариев и исходного форматирования.
// Зависимости: internal/ast, internal/lexer (проверка идентификаторов).
package format
