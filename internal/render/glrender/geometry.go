package glrender

// quadGeometry is a full-screen quad: position xyz then texture uv.
var quadGeometry = []float32{
	1, 1, 0, 1, 1,
	1, -1, 0, 1, 0,
	-1, -1, 0, 0, 0,
	-1, 1, 0, 0, 1,
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// cubeFloatsPerVertex is position xyz, normal xyz and texture uv.
const cubeFloatsPerVertex = 8

// squareVertices is the number of leading cube vertices forming the front
// face, drawn alone for flat pixels.
const squareVertices = 6

// cubeGeometry is a unit cube centred on the origin, front face first.
var cubeGeometry = buildCube()

func buildCube() []float32 {
	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	order := [6]int{0, 1, 2, 0, 2, 3}

	out := make([]float32, 0, len(faces)*len(order)*cubeFloatsPerVertex)
	for _, f := range faces {
		for _, i := range order {
			c := f.corners[i]
			out = append(out, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2], uvs[i][0], uvs[i][1])
		}
	}
	return out
}
