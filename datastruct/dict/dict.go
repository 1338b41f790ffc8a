package dict

// Dict is interface of a key-value data structure
type Dict[V any] interface {
	Get(key string) (val V, exists bool)
	Len() int
	Put(key string, val V) (result int)
	PutIfAbsent(key string, val V) (result int)
	Remove(key string) (result int)
	Clear()
}
