// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"github.com/google/btree"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

const queueDegree = 16

type queued struct {
	status Status
	key    core.MilestoneKey
}

func (q queued) less(o queued) bool {
	if q.status != o.status {
		return q.status < o.status
	}
	return q.key.Less(o.key)
}

// queue indexes milestones that still wait on a certification step, ordered
// by stage and then by key. It is derived from the milestone table and is
// rebuilt lazily after a flush.
type queue struct {
	items  *btree.BTreeG[queued]
	loaded bool
}

func newQueue() *queue {
	return &queue{
		items: btree.NewG(queueDegree, queued.less),
	}
}

func (q *queue) reset() {
	q.items.Clear(false)
	q.loaded = false
}

// move re-files key from one stage to the next. Approved milestones leave
// the queue.
func (q *queue) move(key core.MilestoneKey, from, to Status) {
	if !q.loaded {
		return
	}
	q.items.Delete(queued{status: from, key: key})
	if to != Approved {
		q.items.ReplaceOrInsert(queued{status: to, key: key})
	}
}

func (q *queue) add(key core.MilestoneKey, status Status) {
	if q.loaded && status != Approved {
		q.items.ReplaceOrInsert(queued{status: status, key: key})
	}
}

func (q *queue) list(status Status, after *core.MilestoneKey, limit int) []core.MilestoneKey {
	keys := []core.MilestoneKey{}
	if limit <= 0 {
		return keys
	}
	pivot := queued{status: status}
	q.items.AscendGreaterOrEqual(pivot, func(item queued) bool {
		if item.status != status {
			return false
		}
		if after != nil && !after.Less(item.key) {
			return true
		}
		keys = append(keys, item.key)
		return len(keys) < limit
	})
	return keys
}
