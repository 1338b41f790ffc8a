package set

// RandomSet 可以在 O(1) 时间内随机删除元素的集合
//
// items 是没有空洞的稠密数组，position 记录每个元素在 items 中的下标。
// 删除时用最后一个元素填补空位，所以遍历顺序不固定，任何删除之后都可能改变。
// RandomSet 不是线程安全的，并发访问需要调用方加锁。
type RandomSet[E comparable] struct {
	items    []E
	position map[E]int
}

var _ Set[string] = (*RandomSet[string])(nil)

// MakeRandomSet 创建集合，重复的元素只保留一个
func MakeRandomSet[E comparable](members ...E) *RandomSet[E] {
	set := &RandomSet[E]{
		items:    make([]E, 0, len(members)),
		position: make(map[E]int, len(members)),
	}

	for _, member := range members {
		set.Add(member)
	}

	return set
}

// Add 添加元素，已经存在时返回 false
func (set *RandomSet[E]) Add(val E) bool {
	if _, exists := set.position[val]; exists {
		return false
	}

	set.position[val] = len(set.items)
	set.items = append(set.items, val)
	return true
}

// RemoveAt 删除下标 index 处的元素，用最后一个元素覆盖空位
// index 越界时返回 false
func (set *RandomSet[E]) RemoveAt(index int) (E, bool) {
	var zero E
	if index < 0 || index >= len(set.items) {
		return zero, false
	}

	removed := set.items[index]
	delete(set.position, removed)

	lastIndex := len(set.items) - 1
	if index != lastIndex {
		// 删除的不是最后一个元素，把最后一个元素移动到空位
		last := set.items[lastIndex]
		set.items[index] = last
		set.position[last] = index
	}

	set.items[lastIndex] = zero
	set.items = set.items[:lastIndex]

	return removed, true
}

// Remove 删除元素，不存在时返回 false
func (set *RandomSet[E]) Remove(val E) bool {
	index, exists := set.position[val]
	if !exists {
		return false
	}

	set.RemoveAt(index)
	return true
}

// Get 返回下标 index 处的元素，越界时 panic
func (set *RandomSet[E]) Get(index int) E {
	return set.items[index]
}

func (set *RandomSet[E]) Has(val E) bool {
	_, exists := set.position[val]
	return exists
}

func (set *RandomSet[E]) Len() int {
	return len(set.items)
}

// PollRandom 随机删除并返回一个元素，集合为空时返回 false
func (set *RandomSet[E]) PollRandom(rnd Intner) (E, bool) {
	if len(set.items) == 0 {
		var zero E
		return zero, false
	}

	return set.RemoveAt(rnd.Intn(len(set.items)))
}

// RandomMember 随机返回一个元素，但不删除
func (set *RandomSet[E]) RandomMember(rnd Intner) (E, bool) {
	if len(set.items) == 0 {
		var zero E
		return zero, false
	}

	return set.items[rnd.Intn(len(set.items))], true
}

// RandomMembers 随机返回 limit 个元素，可能包含重复的元素
func (set *RandomSet[E]) RandomMembers(rnd Intner, limit int) []E {
	if len(set.items) == 0 || limit <= 0 {
		return []E{}
	}

	members := make([]E, limit)
	for i := range members {
		members[i] = set.items[rnd.Intn(len(set.items))]
	}

	return members
}

// RandomDistinctMembers 随机返回最多 limit 个不重复的元素，不修改集合
func (set *RandomSet[E]) RandomDistinctMembers(rnd Intner, limit int) []E {
	n := len(set.items)
	if limit > n {
		limit = n
	}
	if limit <= 0 {
		return []E{}
	}

	// 只对前 limit 个下标做 Fisher-Yates 洗牌，swapped 记录被交换过的下标
	swapped := make(map[int]int, limit)
	members := make([]E, 0, limit)
	for i := 0; i < limit; i++ {
		j := i + rnd.Intn(n-i)

		picked, ok := swapped[j]
		if !ok {
			picked = j
		}
		current, ok := swapped[i]
		if !ok {
			current = i
		}
		swapped[j] = current

		members = append(members, set.items[picked])
	}

	return members
}

func (set *RandomSet[E]) ToSlice() []E {
	slice := make([]E, len(set.items))
	copy(slice, set.items)

	return slice
}

// ForEach 按当前数组顺序遍历，consumer 返回 false 时停止
func (set *RandomSet[E]) ForEach(consumer func(member E) bool) {
	for _, member := range set.items {
		if !consumer(member) {
			break
		}
	}
}

// Intersect 返回交集
func (set *RandomSet[E]) Intersect(another Set[E]) Set[E] {
	if set == nil {
		panic("set is nil")
	}

	result := MakeRandomSet[E]()
	another.ForEach(func(member E) bool {
		if set.Has(member) {
			result.Add(member)
		}

		return true
	})

	return result
}

// Union 合并两个集合
func (set *RandomSet[E]) Union(another Set[E]) Set[E] {
	if set == nil {
		panic("set is nil")
	}

	result := MakeRandomSet[E](set.items...)
	another.ForEach(func(member E) bool {
		result.Add(member)

		return true
	})

	return result
}

// Diff 返回差集，当前集合-another
func (set *RandomSet[E]) Diff(another Set[E]) Set[E] {
	if set == nil {
		panic("set is nil")
	}

	result := MakeRandomSet[E]()
	set.ForEach(func(member E) bool {
		if !another.Has(member) {
			result.Add(member)
		}

		return true
	})

	return result
}
