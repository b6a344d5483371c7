// Package sema infers, for every binding and function of a module, whether
// it evaluates to markup and whether that value is available synchronously
// or only after an await.
//
// Обход один: стек областей видимости, регистр типа возврата и регистр
// последней закрытой стрелочной функции принадлежат одному объекту checker.
// Вывод намеренно приблизительный: это не проверка типов, а ответ на вопрос
// «нужно ли ждать этот компонент при потоковой отдаче».
package sema
