package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// ModelID identifies one of the bundled ship models
type ModelID int

const (
	ModelCamoStellarJet ModelID = iota
	ModelDualStriker
	ModelGalactixRacer
	ModelInterstellarRunner
	ModelMeteorSlicer
	ModelRedFighter
	ModelStarMarineTrooper
	ModelTranstellar
	ModelUltravioletIntruder
	ModelWarship
	modelIDCount
)

var modelNames = [modelIDCount]string{
	"CamoStellarJet",
	"DualStriker",
	"GalactixRacer",
	"InterstellarRunner",
	"MeteorSlicer",
	"RedFighter",
	"StarMarineTrooper",
	"Transtellar",
	"UltravioletIntruder",
	"Warship",
}

func (id ModelID) String() string {
	if id < 0 || id >= modelIDCount {
		return "Unknown"
	}
	return modelNames[id]
}

// cycleModelID wraps an index into a valid ModelID so each level can pick
// the next model in the list without running off the end
func cycleModelID(i int) ModelID {
	return ModelID(((i % int(modelIDCount)) + int(modelIDCount)) % int(modelIDCount))
}

// ShipBox is the precomputed bounding extents of a model, in world units
type ShipBox struct {
	ByX float64
	ByY float64
	ByZ float64
}

// ShipModel is a shared, immutable ship asset. Entities hold a non-owning
// pointer; the registry outlives every entity list.
type ShipModel struct {
	ID   ModelID
	Name string
	Box  ShipBox
	Tint color.NRGBA

	sprite *ebiten.Image
}

// Sprite returns the render handle for the model, or nil before the draw
// layer has built sprites (headless runs never build them)
func (m *ShipModel) Sprite() *ebiten.Image {
	if m == nil {
		return nil
	}
	return m.sprite
}

// ModelProvider hands out shared ship models by id
type ModelProvider interface {
	Model(id ModelID) *ShipModel
}

// TextureID identifies a required effect texture
type TextureID string

const (
	TextureBulletTrail TextureID = "bullet_trail"
	TextureExplosionA  TextureID = "explosion_a"
)

// TextureProvider hands out effect textures by id. A missing required
// texture is a broken asset bundle and aborts the process.
type TextureProvider interface {
	Texture(id TextureID) *ebiten.Image
}

// ModelRegistry owns every ship model and effect texture. Asset files are
// out of scope here; bounding dimensions are a static table and the render
// handles are generated procedurally by the draw layer on first use.
type ModelRegistry struct {
	models   [modelIDCount]*ShipModel
	textures map[TextureID]*ebiten.Image
	log      zerolog.Logger
}

// modelBoxes holds per-model bounding extents matching the bundled geometry
var modelBoxes = [modelIDCount]ShipBox{
	{6.0, 2.2, 6.4},  // CamoStellarJet
	{6.6, 2.0, 5.8},  // DualStriker
	{5.2, 1.8, 7.0},  // GalactixRacer
	{6.0, 2.4, 6.0},  // InterstellarRunner
	{6.8, 2.0, 6.2},  // MeteorSlicer
	{5.6, 2.2, 6.6},  // RedFighter
	{6.2, 2.6, 6.0},  // StarMarineTrooper
	{6.4, 2.4, 6.8},  // Transtellar
	{5.8, 2.0, 6.4},  // UltravioletIntruder
	{7.2, 2.8, 7.4},  // Warship
}

var modelTints = [modelIDCount]color.NRGBA{
	{110, 160, 110, 255},
	{180, 120, 70, 255},
	{90, 140, 200, 255},
	{200, 90, 90, 255},
	{150, 150, 160, 255},
	{220, 60, 60, 255},
	{80, 170, 150, 255},
	{120, 150, 255, 255},
	{160, 90, 200, 255},
	{130, 130, 90, 255},
}

// NewModelRegistry builds the shared model table. It never touches the GPU,
// so the simulation and its tests can run headless.
func NewModelRegistry(logger zerolog.Logger) *ModelRegistry {
	r := &ModelRegistry{
		textures: make(map[TextureID]*ebiten.Image),
		log:      logger,
	}
	for i := ModelID(0); i < modelIDCount; i++ {
		r.models[i] = &ShipModel{
			ID:   i,
			Name: modelNames[i],
			Box:  modelBoxes[i],
			Tint: modelTints[i],
		}
	}
	logger.Info().Int("models", int(modelIDCount)).Msg("ship model registry ready")
	return r
}

// Model returns the shared model for the id, or nil when out of range
func (r *ModelRegistry) Model(id ModelID) *ShipModel {
	if r == nil || id < 0 || id >= modelIDCount {
		return nil
	}
	return r.models[id]
}

// Texture returns the effect texture for the id. Unknown ids mean a broken
// asset bundle, which is fatal by design.
func (r *ModelRegistry) Texture(id TextureID) *ebiten.Image {
	tex, ok := r.textures[id]
	if !ok {
		r.log.Fatal().Str("texture", string(id)).Msg("required texture missing")
	}
	return tex
}

// installTexture registers a generated effect texture. Called by the draw
// layer during sprite generation.
func (r *ModelRegistry) installTexture(id TextureID, img *ebiten.Image) {
	r.textures[id] = img
}
