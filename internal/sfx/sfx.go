// Package sfx synthesizes the game's sound effects as interleaved stereo
// float32 little-endian PCM, ready for an oto player.
package sfx

import (
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8 // two float32 channels
)

// Kind identifies a sound effect.
type Kind int

const (
	Gunshot Kind = iota
	DryFire
	Shatter
	Start
	Victory
	TimeUp
	EndEarly
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Gunshot:
		return "gunshot"
	case DryFire:
		return "dry fire"
	case Shatter:
		return "shatter"
	case Start:
		return "start"
	case Victory:
		return "victory"
	case TimeUp:
		return "time up"
	case EndEarly:
		return "end early"
	}
	return "unknown"
}

// Kinds lists every effect, for preloading.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Generate renders kind. Output is deterministic for a given seed.
func Generate(kind Kind, seed uint64) []byte {
	switch kind {
	case Gunshot:
		return genGunshot(seed)
	case DryFire:
		return genDryFire()
	case Shatter:
		return genShatter(seed)
	case Start:
		return genChime([]float64{523.25, 783.99}, 0.07, 0.12)
	case Victory:
		return genChime([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09, 0.25)
	case TimeUp:
		return genFall([]float64{329.63, 261.63, 220.00}, 0.75)
	case EndEarly:
		return genFall([]float64{293.66, 220.00}, 0.45)
	}
	return nil
}

// Frames reports the frame count of a PCM buffer.
func Frames(pcm []byte) int { return len(pcm) / frameBytes }

// Sample decodes the left channel of frame i.
func Sample(pcm []byte, i int) float64 {
	o := i * frameBytes
	v := uint32(pcm[o]) | uint32(pcm[o+1])<<8 | uint32(pcm[o+2])<<16 | uint32(pcm[o+3])<<24
	return float64(math.Float32frombits(v))
}

func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	o := i * frameBytes
	for ch := 0; ch < ChannelCount; ch++ {
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
		o += 4
	}
}

func frames(seconds float64) int { return int(seconds * SampleRate) }

// softSat is a gentle saturator that keeps output inside [-1,1].
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

// adsr is an envelope over normalized progress; stage lengths are fractions
// of the whole sound.
func adsr(p, attack, decay, sustain, release float64) float64 {
	switch {
	case p < attack:
		return p / attack
	case p < attack+decay:
		return 1 - (p-attack)/decay*(1-sustain)
	case p < 1-release:
		return sustain
	default:
		return sustain * (1 - (p-(1-release))/release)
	}
}

func fm(t, carrier, ratio, index float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + index*mod)
}

// noise advances an LCG and returns a sample in [-1,1].
func noise(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func render(mix []float64) []byte {
	buf := make([]byte, len(mix)*frameBytes)
	for i, s := range mix {
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// genGunshot: noise crack, falling sub thump and a short metallic ring.
func genGunshot(seed uint64) []byte {
	n := frames(0.11)
	mix := make([]float64, n)
	seed ^= 0x6A55
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		var crack float64
		if p < 0.014 {
			crack = noise(&seed) * (1 - p/0.014) * 0.88
		}
		thump := math.Sin(2*math.Pi*200*math.Pow(0.04, p*4)*t) * math.Exp(-p*22) * 0.62
		body := noise(&seed) * math.Pow(1-p, 5) * 0.28
		ring := math.Sin(2*math.Pi*3400*t) * math.Exp(-p*35) * 0.09
		mix[i] = (crack + thump + body + ring) * 0.82
	}
	return render(mix)
}

// genDryFire: a hammer click with no report.
func genDryFire() []byte {
	n := frames(0.05)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.4, 0, 0.1)
		mix[i] = fm(t, 1800-900*p, 1.0, 0.8) * env * 0.3
	}
	return render(mix)
}

// genShatter: band-passed noise burst with glassy partials, for a destroyed
// target.
func genShatter(seed uint64) []byte {
	n := frames(0.35)
	mix := make([]float64, n)
	seed ^= 0x5A77
	hi, lo := 0.0, 0.0
	partials := [...]float64{2637, 3520, 4186}
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		raw := noise(&seed)
		hi = hi*0.6 + raw*0.4
		lo = lo*0.97 + raw*0.03
		burst := (hi - lo) * math.Exp(-p*9) * 0.55
		var glass float64
		for k, f := range partials {
			glass += math.Sin(2*math.Pi*f*t) * math.Exp(-p*(12+4*float64(k)))
		}
		mix[i] = burst + glass*0.08
	}
	return render(mix)
}

// genChime: rising FM bell notes, each ringing over the next.
func genChime(notes []float64, step, tail float64) []byte {
	stepN := frames(step)
	total := len(notes)*stepN + frames(tail)
	mix := make([]float64, total)
	for k, f := range notes {
		start := k * stepN
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.003, 0.65, 0.04, 0.28)
			mix[start+j] += fm(t, f, 3.5, 5.5*env)*env*0.28 + math.Sin(2*math.Pi*f*2*t)*env*0.07
		}
	}
	return render(mix)
}

// genFall: staggered descending notes with a slight pitch sag.
func genFall(notes []float64, seconds float64) []byte {
	n := frames(seconds)
	mix := make([]float64, n)
	onset := seconds * 0.19
	for k, f := range notes {
		start := frames(float64(k) * onset)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := f * (1 - np*0.025)
			mix[i] += fm(t, freq, 2.0, 2.0*env)*env*0.32 + math.Sin(2*math.Pi*freq*0.5*t)*env*0.1
		}
	}
	return render(mix)
}
