/**
 *
 * 利用数组实现的定长双端队列，用于保存最近的计算记录
 * 头部为最新元素，容量满时由调用方决定从尾部淘汰
 *
 */

package deque

type Deque[T any] interface {
	// 队列的长度
	Size() int

	// 队列容量
	Capacity() int

	// 获取队列中对应下标的元素，0 为头部
	Get(i int) T

	// 正向遍历，f 返回 false 时停止
	Traverse(f func(i int, item *T) bool)

	// 在队列头部增加一个元素，队列已满时返回 false
	AddFirst(item T) bool

	// 在队列结尾删除一个元素
	RemoveLast() (T, bool)

	// 删除所有满足条件的元素，返回删除个数
	RemoveIf(pred func(item T) bool) int

	Clear()

	IsFull() bool

	IsEmpty() bool
}
