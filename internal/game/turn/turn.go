// Package turn 维护画手轮换顺序
package turn

import "slices"

// Reconcile 让轮换顺序与当前在场玩家一致：
// 移除已离开的玩家，保留原有顺序，新玩家追加到队尾
func Reconcile(order, present []string) []string {
	out := make([]string, 0, len(present))
	for _, id := range order {
		if slices.Contains(present, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, id := range present {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// NextDrawer 弹出队首作为画手并放回队尾。
// order 为空时按 present 的顺序初始化；没有在场玩家时返回空字符串
func NextDrawer(order, present []string) (drawer string, newOrder []string) {
	if len(order) == 0 {
		order = slices.Clone(present)
	}
	order = Reconcile(order, present)
	if len(order) == 0 {
		return "", order
	}

	drawer = order[0]
	newOrder = append(slices.Clone(order[1:]), drawer)
	return drawer, newOrder
}
