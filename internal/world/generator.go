package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/goblinrun/internal/telemetry"
)

const (
	// Default generated map dimensions
	DefaultWidth  = 60
	DefaultHeight = 30

	// BSP parameters
	minRoomSize = 5  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 8  // Minimum BSP leaf size before stopping split

	maxGrassRadius = 3
)

// generator carves a map using binary space partitioning. Each leaf gets a
// room, sibling rooms are joined by corridors, and grass patches are
// scattered through every room but the first, which holds the spawn point
// and the healer.
type generator struct {
	m   *Map
	rng *rand.Rand
}

// Generate builds a random overworld. The same rng seed always yields the
// same map.
func Generate(ctx context.Context, width, height int, rng *rand.Rand) *Map {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	g := &generator{m: NewMap(width, height), rng: rng}
	g.m.Name = "generated"

	// Start BSP with everything inside the border as root
	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}

	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)

	if len(g.m.Rooms) == 0 {
		g.carveRoom(Room{X: 1, Y: 1, Width: width - 2, Height: height - 2})
		g.m.Rooms = append(g.m.Rooms, Room{X: 1, Y: 1, Width: width - 2, Height: height - 2})
	}

	g.placeSpawnAndHealer()
	grass := g.scatterGrass()

	span.SetAttributes(
		attribute.Int("world.width", width),
		attribute.Int("world.height", height),
		attribute.Int("world.room_count", len(g.m.Rooms)),
		attribute.Int("world.grass_tiles", grass),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.m
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *generator) splitNode(node *bspNode) {
	canSplitH := node.height >= minLeafSize*2
	canSplitV := node.width >= minLeafSize*2

	var horizontal bool
	switch {
	case canSplitV && (node.width > node.height || !canSplitH):
		horizontal = false
	case canSplitH:
		horizontal = true
	default:
		return
	}

	size := node.width
	if horizontal {
		size = node.height
	}
	split := minLeafSize + g.rng.Intn(size-2*minLeafSize+1)

	if horizontal {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: split}
		node.right = &bspNode{x: node.x, y: node.y + split, width: node.width, height: node.height - split}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: split, height: node.height}
		node.right = &bspNode{x: node.x + split, y: node.y, width: node.width - split, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	roomWidth := min(minRoomSize+g.rng.Intn(maxRoomSize-minRoomSize+1), node.width-2)
	roomHeight := min(minRoomSize+g.rng.Intn(maxRoomSize-minRoomSize+1), node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return // Leaf too small
	}

	room := Room{
		X:      node.x + 1 + g.rng.Intn(node.width-roomWidth-1),
		Y:      node.y + 1 + g.rng.Intn(node.height-roomHeight-1),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	g.m.Rooms = append(g.m.Rooms, room)
	g.carveRoom(room)
}

// carveRoom sets all tiles within the room to floor.
func (g *generator) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

// carve turns an interior tile into floor. The border stays solid.
func (g *generator) carve(x, y int) {
	if x > 0 && x < g.m.Width-1 && y > 0 && y < g.m.Height-1 {
		g.m.SetTile(x, y, TileFloor)
	}
}

// connectRooms joins the rooms of sibling subtrees with corridors.
func (g *generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)

	left, right := firstRoom(node.left), firstRoom(node.right)
	if left != nil && right != nil {
		g.carveCorridor(*left, *right)
	}
}

// firstRoom returns any room from a subtree.
func firstRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := firstRoom(node.left); room != nil {
		return room
	}
	return firstRoom(node.right)
}

// carveCorridor creates an L-shaped corridor between two room centers.
func (g *generator) carveCorridor(a, b Room) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()

	if g.rng.Intn(2) == 0 {
		g.carveLine(x1, y1, x2, y1)
		g.carveLine(x2, y1, x2, y2)
	} else {
		g.carveLine(x1, y1, x1, y2)
		g.carveLine(x1, y2, x2, y2)
	}
}

// carveLine carves a horizontal or vertical run of floor.
func (g *generator) carveLine(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			g.carve(x, y)
		}
	}
}

// placeSpawnAndHealer puts the player in the middle of the first room and
// the healer in its top-left corner.
func (g *generator) placeSpawnAndHealer() {
	first := g.m.Rooms[0]
	g.m.SpawnX, g.m.SpawnY = first.Center()
	g.m.SetTile(first.X, first.Y, TileHealer)
}

// scatterGrass drops one elliptical grass patch into every room after the
// first and returns the number of grass tiles placed.
func (g *generator) scatterGrass() int {
	placed := 0
	for _, room := range g.m.Rooms[1:] {
		cx, cy := room.RandomPoint(g.rng)
		rx := 1 + g.rng.Intn(maxGrassRadius)
		ry := 1 + g.rng.Intn(maxGrassRadius)

		for y := cy - ry; y <= cy+ry; y++ {
			for x := cx - rx; x <= cx+rx; x++ {
				if !room.Contains(x, y) || g.m.GetTile(x, y) != TileFloor {
					continue
				}
				dx := float64(x-cx) / float64(rx)
				dy := float64(y-cy) / float64(ry)
				if dx*dx+dy*dy <= 1 {
					g.m.SetTile(x, y, TileGrass)
					placed++
				}
			}
		}
	}
	return placed
}
