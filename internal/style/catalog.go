// Package style holds the fixed visual-style catalog and the slide-deck
// instruction template rendered from it.
package style

// Profile 一种视觉风格的提示片段
type Profile struct {
	Name   string
	Prompt string
	// CharacterIntegration 为 true 时要求在视觉提示中加入固定角色
	CharacterIntegration bool
}

// Default 未知或为空的风格名都回退到该风格
const Default = "3D Animated Movie"

var profiles = []Profile{
	{
		Name:   "3D Animated Movie",
		Prompt: `Style: High-End 3D Animated Movie Style (Pixar-esque). Keywords: "3D render, cute and expressive characters, soft cinematic lighting, warm color palette, high fidelity, subsurface scattering, 8k resolution, Unreal Engine 5 style, Disney/Pixar aesthetic."`,
	},
	{
		Name:   "Modern Organic Vector",
		Prompt: `Style: Modern Organic Vector Illustration with Subtle Texture. Keywords: "Clean and friendly vector art, rounded organic shapes, no sharp edges, cheerful color palette, subtle paper grain texture overlay, clear composition, educational infographic aesthetic, approachable design."`,
	},
	{
		Name:   "Soft Watercolor",
		Prompt: `Style: Whimsical Watercolor Children's Book Illustration. Keywords: "Hand-painted texture, soft watercolor washes, ink outlines, pastel color palette, dreamy atmosphere, artistic, textured paper background, gentle and calming, Beatrix Potter style."`,
	},
	{
		Name: "Classic Doraemon",
		Prompt: `Style: Classic Fujiko F. Fujio Anime Style (Doraemon aesthetic). Keywords: "Retro Japanese TV anime look, cel-shaded, bold black outlines, flat bright primary colors, simple rounded character designs, hand-drawn animation texture, warm and nostalgic atmosphere, playful, manga panel feel."

## Character Integration Strategy
**Crucial Instruction:** To make the visuals engaging for children, you must feature the main characters, **Doraemon and Nobita**, as the protagonists in the visual descriptions for most slides.
- **Rule:** Doraemon and Nobita must be present in the scene, interacting with the news topic.
- **How to implement:**
  - **Action & Emotion:** Describe their reactions to the story events (e.g., looking surprised at a discovery, smiling at an animal).
  - **Contextual Setting:** Place them directly into the news environment (e.g., floating in space, exploring a jungle, or visiting a museum).`,
		CharacterIntegration: true,
	},
	{
		Name:   "Layered Paper Cutout",
		Prompt: `Style: 3D Layered Paper Cutout Art (Diorama Style). Keywords: "Layered paper craft, depth and shadows, intricate paper details, origami elements, vibrant contrasting colors, lightbox effect, isometric view, magical and crafted feel."`,
	},
	{
		Name:   "Modern Cozy Storybook",
		Prompt: `Style: Modern Cozy Narrative Children's Book Illustration. Keywords: "Soft gouache and colored pencil texture mimicking traditional media, visible paper grain, warm and inviting color palette with earth tones and soft greens, diffused golden hour lighting, gentle volumetric shadows, cute rounded expressive characters with friendly faces, no harsh black outlines, colored linework, comforting and whimsical atmosphere, detailed storybook spread aesthetic."`,
	},
	{
		Name:   "Vibrant Kids Comic",
		Prompt: `Style: Vibrant and Playful Children's Comic Book Style. Keywords: "Bold expressive outlines, dynamic character poses, bright saturated colors, halftone dot patterns, energetic composition, fun speech bubbles, action lines."`,
	},
}

// byName 只在包初始化时写入，之后只读
var byName = func() map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return m
}()

// Lookup 按名称精确查找
func Lookup(name string) (Profile, bool) {
	p, ok := byName[name]
	return p, ok
}

// Resolve 查找风格，找不到时返回默认风格
func Resolve(name string) Profile {
	if p, ok := byName[name]; ok {
		return p
	}
	return byName[Default]
}

// Names 按目录顺序返回所有风格名
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
