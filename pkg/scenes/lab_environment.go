package scenes

import (
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/decker502/virtuallab/pkg/systems"
)

// envTiles 每面墙/地板/天花板拆分的块数（每边）
// 拆分后落在镜头后方的块可以单独跳过，其余部分仍能绘制
const envTiles = 8

// gridLift 网格略高于地板，避免与地板重合
const gridLift = 0.01

// buildRoom 生成房间四面墙、地板与天花板
// 墙从地板延伸到天花板，正方形房间以原点为中心
func buildRoom(room config.RoomConfig) []systems.EnvQuad {
	half := room.Width / 2
	bottom := room.FloorY
	top := room.FloorY + room.Height

	type plane struct {
		origin, u, v math3d.Vec3
		color        scene.Color
	}
	planes := []plane{
		// 后墙、前墙
		{math3d.V3(-half, bottom, -half), math3d.V3(room.Width, 0, 0), math3d.V3(0, room.Height, 0), scene.Color(room.WallColor)},
		{math3d.V3(-half, bottom, half), math3d.V3(room.Width, 0, 0), math3d.V3(0, room.Height, 0), scene.Color(room.WallColor)},
		// 左墙、右墙
		{math3d.V3(-half, bottom, -half), math3d.V3(0, 0, room.Width), math3d.V3(0, room.Height, 0), scene.Color(room.WallColor)},
		{math3d.V3(half, bottom, -half), math3d.V3(0, 0, room.Width), math3d.V3(0, room.Height, 0), scene.Color(room.WallColor)},
		// 地板、天花板
		{math3d.V3(-half, bottom, -half), math3d.V3(room.Width, 0, 0), math3d.V3(0, 0, room.Width), scene.Color(room.FloorColor)},
		{math3d.V3(-half, top, -half), math3d.V3(room.Width, 0, 0), math3d.V3(0, 0, room.Width), scene.Color(room.CeilingColor)},
	}

	quads := make([]systems.EnvQuad, 0, len(planes)*envTiles*envTiles)
	for _, p := range planes {
		du := p.u.Scale(1.0 / envTiles)
		dv := p.v.Scale(1.0 / envTiles)
		for i := 0; i < envTiles; i++ {
			for j := 0; j < envTiles; j++ {
				o := p.origin.Add(du.Scale(float64(i))).Add(dv.Scale(float64(j)))
				quads = append(quads, systems.EnvQuad{
					Corners: [4]math3d.Vec3{o, o.Add(du), o.Add(du).Add(dv), o.Add(dv)},
					Color:   p.color,
				})
			}
		}
	}
	return quads
}

// buildGrid 生成地面网格线（GridSize × GridSize，GridDivision 等分）
func buildGrid(room config.RoomConfig) []systems.GridLine {
	if room.GridDivision <= 0 || room.GridSize <= 0 {
		return nil
	}
	half := room.GridSize / 2
	y := room.FloorY + gridLift
	step := room.GridSize / float64(room.GridDivision)
	clr := scene.Color(room.GridColor)

	lines := make([]systems.GridLine, 0, 2*(room.GridDivision+1))
	for i := 0; i <= room.GridDivision; i++ {
		k := -half + float64(i)*step
		lines = append(lines,
			systems.GridLine{From: math3d.V3(-half, y, k), To: math3d.V3(half, y, k), Color: clr},
			systems.GridLine{From: math3d.V3(k, y, -half), To: math3d.V3(k, y, half), Color: clr},
		)
	}
	return lines
}
