// Package lower rewrites JSX in a parsed module into server-rendering code.
//
// Every JSX element that is not nested directly inside other markup becomes
// a synchronous closure returning `[first, continuation]`: first is the
// markup available immediately, continuation streams the markup of
// deferred components into the response once they resolve.
//
// Внутри разметки элементы сворачиваются в один шаблон. Нативные теги дают
// литеральный HTML, компоненты превращаются в вызовы. Компонент, тип
// которого не известен как синхронная разметка, заменяется пустым
// элементом-заглушкой и попадает в список отложенных созданий.
package lower
