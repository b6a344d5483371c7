// Package typeinfo persists the export types inferred for a source file,
// keyed by the SHA-256 of its content.
//
// Запись хранится в msgpack-потоке: версия формата, хеш, число записей
// и пары (имя, тип) в порядке сортировки имён. Любое изменение байтов файла
// или версии формата делает запись недействительной.
package typeinfo
