package gridpath

// PriorityQueueItem is a frontier entry. Seq is the insertion counter used to
// break ties between entries with equal FCost: the earlier insertion wins.
// GScore and FCost are fixed at push time; a later cheaper route to the cell
// does not move it in the queue.
type PriorityQueueItem struct {
	Cell         Cell
	GScore       int
	FCost        int
	Seq          uint64
	IndexInQueue int
}

// PriorityQueue is a min-heap over (FCost, Seq) for use with container/heap.
type PriorityQueue []*PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }
func (queue PriorityQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
