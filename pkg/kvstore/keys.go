package kvstore

import (
	"slices"
	"strings"
)

// Key адрес записи: пространство имен и идентификатор внутри него.
type Key struct {
	Namespace string
	ID        string
}

func NewKey(namespace, id string) Key {
	return Key{Namespace: namespace, ID: id}
}

func (k Key) String() string {
	return k.Namespace + "/" + k.ID
}

type Entry struct {
	Key   Key
	Value []byte
}

// canonicalLocks убирает дубликаты и упорядочивает ключи. Все реализации берут блокировки в этом порядке,
// что исключает взаимоблокировки.
func canonicalLocks(locks []Key) []Key {
	res := slices.Clone(locks)
	slices.SortFunc(res, func(a, b Key) int {
		if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return slices.Compact(res)
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key.ID, b.Key.ID)
	})
}
