// Package explorer ties the traversal engine, the response cache and the
// mutation operations together behind one Manager.
//
// The Manager is what the HTTP handlers and the CLI talk to. It owns the
// service-lifetime state: the walker (with its metadata cache and worker
// pool) and the response cache. Every successful mutation invalidates both
// caches for the directories it touched.
package explorer
