package programs

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

func WrapWithProgress(img *image.Image) func() float64 {
	p := &ProgressImage{
		Image: *img,
	}

	*img = p
	return p.Progress
}

type ProgressImage struct {
	image.Image
	count atomic.Int64
}

func (i *ProgressImage) At(x, y int) color.Color {
	i.count.Add(1)
	return i.Image.At(x, y)
}

func (i *ProgressImage) Progress() float64 {
	end := i.Bounds().Dx() * i.Bounds().Dy()
	if end == 0 {
		return 1
	}
	return float64(i.count.Load()) / float64(end)
}

func (i *ProgressImage) Opaque() bool {
	return true
}

// AntiAlias9x samples 9 positions for each sampled position,
// returning the average colour.
//
// antialias is the number of pixels apart the sampled locations are.
func AntiAlias9x(img Image, antialias float32) Image {
	return &antialias9xImage{
		Image:   img,
		offsetX: 2 * antialias / float32(max(img.Bounds().Dx(), 1)),
		offsetY: 2 * antialias / float32(max(img.Bounds().Dy(), 1)),
	}
}

type antialias9xImage struct {
	Image
	offsetX float32
	offsetY float32
}

func (i *antialias9xImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	avg := mgl32.Vec3{}
	for _, dx := range [3]float32{-i.offsetX, 0, i.offsetX} {
		for _, dy := range [3]float32{-i.offsetY, 0, i.offsetY} {
			avg = avg.Add(i.Image.GetPixel(mgl32.Vec2{pos[0] + dx, pos[1] + dy}))
		}
	}
	return avg.Mul(1 / float32(9))
}

func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		height: img.Bounds().Dy(),
	}
}

type BufferedImage struct {
	image.Image
	height int
	buff   []color.Color
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Image.Bounds().Dx(), b.Image.Bounds().Dy())
}

func (b *BufferedImage) At(x, y int) color.Color {
	return b.buff[x*b.height+y]
}

// Buffer renders the wrapped image in column chunks on all cores.
func (b *BufferedImage) Buffer(ctx context.Context) error {
	b.buff = make([]color.Color, b.Image.Bounds().Dx()*b.Image.Bounds().Dy())

	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	chunkSize := 50
	g, ctx := errgroup.WithContext(ctx)

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		g.Go(func() error {
			i := (chunkMin - min.X) * b.height
			for x := chunkMin; x < chunkMax; x++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				for y := min.Y; y < max.Y; y++ {
					b.buff[i] = b.Image.At(x, y)
					i++
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func (b *BufferedImage) Opaque() bool {
	return true
}

// ToImage samples img at pixel centres. The image spans [-1, 1] on both
// axes with y pointing up, matching the pointer transform.
func ToImage(img Image) image.Image {
	return &imageImage{
		Image:  img,
		halfX:  float32(img.Bounds().Dx()) / 2,
		halfY:  float32(img.Bounds().Dy()) / 2,
		origin: img.Bounds().Min,
	}
}

type imageImage struct {
	Image
	halfX  float32
	halfY  float32
	origin image.Point
}

func (i *imageImage) At(x, y int) color.Color {
	c := i.GetPixel(mgl32.Vec2{
		(float32(x-i.origin.X)+0.5)/i.halfX - 1,
		1 - (float32(y-i.origin.Y)+0.5)/i.halfY,
	})

	return color.NRGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: 0xff,
	}
}

func (i *imageImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (i *imageImage) Opaque() bool {
	return true
}
