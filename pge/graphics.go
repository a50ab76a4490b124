package pge

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

var TheGraphicsContext struct {
	// filter used by DrawImage
	Filter eb.Filter
}

func init() {
	// pixels stay square when scaled up
	TheGraphicsContext.Filter = eb.FilterNearest
}

type DrawImageOptions struct {
	GeoM eb.GeoM

	ColorScale eb.ColorScale
}

type DrawRectShaderOptions struct {
	GeoM eb.GeoM

	ColorScale eb.ColorScale

	Uniforms map[string]any

	Images [4]*eb.Image
}

func DrawImage(dst *eb.Image, src *eb.Image, options *DrawImageOptions) {
	if options == nil {
		options = &DrawImageOptions{}
	}
	op := &eb.DrawImageOptions{}
	op.GeoM = options.GeoM
	op.ColorScale = options.ColorScale
	op.Filter = TheGraphicsContext.Filter
	dst.DrawImage(src, op)
}

func DrawRectShader(
	dst *eb.Image,
	width, height int,
	shader *eb.Shader,
	options *DrawRectShaderOptions,
) {
	if options == nil {
		options = &DrawRectShaderOptions{}
	}
	op := &eb.DrawRectShaderOptions{}
	op.GeoM = options.GeoM
	op.ColorScale = options.ColorScale
	op.Uniforms = options.Uniforms
	op.Images = options.Images
	dst.DrawRectShader(width, height, shader, op)
}
