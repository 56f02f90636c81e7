package deque

var _ Deque[struct{}] = (*ArrDeque[struct{}])(nil)

type ArrDeque[T any] struct {
	arr []T

	// 头部元素在 arr 中的下标
	head int

	// 元素个数
	size int
}

// 工厂方法
func NewArrDeque[T any](capacity int) *ArrDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque[T]{
		arr: make([]T, capacity),
	}
}

func (ad *ArrDeque[T]) Size() int {
	return ad.size
}

func (ad *ArrDeque[T]) Capacity() int {
	return len(ad.arr)
}

// 逻辑下标转换为数组下标
func (ad *ArrDeque[T]) index(i int) int {
	return (ad.head + i) % len(ad.arr)
}

func (ad *ArrDeque[T]) Get(i int) T {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque[T]) Traverse(f func(i int, item *T) bool) {
	for i := 0; i < ad.size; i++ {
		if !f(i, &ad.arr[ad.index(i)]) {
			return
		}
	}
}

func (ad *ArrDeque[T]) AddFirst(item T) bool {
	if ad.IsFull() {
		return false
	}
	ad.head = (ad.head - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.head] = item
	ad.size++
	return true
}

func (ad *ArrDeque[T]) RemoveLast() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	last := ad.index(ad.size - 1)
	item := ad.arr[last]
	ad.arr[last] = zero
	ad.size--
	return item, true
}

// RemoveIf 保持剩余元素的相对顺序
func (ad *ArrDeque[T]) RemoveIf(pred func(item T) bool) int {
	var zero T
	kept := 0
	for i := 0; i < ad.size; i++ {
		item := ad.arr[ad.index(i)]
		if pred(item) {
			continue
		}
		ad.arr[ad.index(kept)] = item
		kept++
	}
	removed := ad.size - kept
	for i := kept; i < ad.size; i++ {
		ad.arr[ad.index(i)] = zero
	}
	ad.size = kept
	return removed
}

func (ad *ArrDeque[T]) Clear() {
	var zero T
	for i := range ad.arr {
		ad.arr[i] = zero
	}
	ad.head, ad.size = 0, 0
}

func (ad *ArrDeque[T]) IsFull() bool {
	return ad.size == len(ad.arr)
}

func (ad *ArrDeque[T]) IsEmpty() bool {
	return ad.size == 0
}
