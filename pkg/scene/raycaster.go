package scene

import (
	"sort"

	"github.com/decker502/virtuallab/pkg/math3d"
)

// Hit 一次射线命中
type Hit struct {
	Node     Node
	Part     *Part
	Distance float64
	Point    math3d.Vec3
}

// IntersectNodes 射线与节点集合求交，结果按距离从近到远排序
// 不可见节点不参与拾取
func IntersectNodes(ray math3d.Ray, nodes []Node) []Hit {
	var hits []Hit
	for _, n := range nodes {
		if n == nil || !n.Visible() {
			continue
		}
		n.Traverse(func(p *Part) {
			t, ok := ray.IntersectBox(n.PartWorldBounds(p))
			if !ok {
				return
			}
			hits = append(hits, Hit{
				Node:     n,
				Part:     p,
				Distance: t,
				Point:    ray.At(t),
			})
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Nearest 返回最近的命中
func Nearest(ray math3d.Ray, nodes []Node) (Hit, bool) {
	hits := IntersectNodes(ray, nodes)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}
