package components

import "github.com/decker502/virtuallab/pkg/scene"

// NodeComponent 实体对应的场景节点（顶层道具）
type NodeComponent struct {
	Node scene.Node
}
