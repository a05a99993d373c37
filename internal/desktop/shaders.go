//go:build !android

package desktop

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh shader: instanced-by-uniform solids with ambient plus hemisphere
// lighting and linear distance fog. uUnlit skips both for the view model.
const meshVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vWorld;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorld = world.xyz;
    vNormal = transpose(inverse(mat3(uModel))) * aNormal;
    gl_Position = uViewProj * world;
}
` + "\x00"

const meshFragSrc = `#version 410 core

uniform vec3 uColor;
uniform vec3 uEye;
uniform vec3 uAmbient;
uniform vec3 uSky;
uniform vec3 uGround;
uniform float uHemi;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;
uniform int uUnlit;

in vec3 vWorld;
in vec3 vNormal;
out vec4 FragColor;

void main() {
    if (uUnlit == 1) {
        FragColor = vec4(uColor, 1.0);
        return;
    }
    vec3 n = normalize(vNormal);
    vec3 hemi = mix(uGround, uSky, n.y * 0.5 + 0.5) * uHemi;
    vec3 col = uColor * (uAmbient + hemi);
    float d = length(vWorld - uEye);
    float fog = clamp((d - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(col, uFogColor, fog), 1.0);
}
` + "\x00"

// Particle shader: perspective-sized point sprites, alpha from the pool.
const pointVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in float aAlpha;

uniform mat4 uView;
uniform mat4 uProj;

out float vAlpha;

void main() {
    vAlpha = aAlpha;
    vec4 mv = uView * vec4(aPos, 1.0);
    gl_PointSize = 10.0 * (300.0 / max(-mv.z, 0.01));
    gl_Position = uProj * mv;
}
` + "\x00"

const pointFragSrc = `#version 410 core

uniform sampler2D uTex;

in float vAlpha;
out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, gl_PointCoord);
    if (t.a < 0.1) discard;
    FragColor = vec4(t.rgb, t.a * vAlpha);
}
` + "\x00"

// Flash shader: textured quad in world space, tinted.
const flashVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
    vUV = aUV;
    gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const flashFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform vec3 uColor;
uniform float uOpacity;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, vUV);
    FragColor = vec4(t.rgb * uColor, t.a * uOpacity);
}
` + "\x00"

// Flat shader: untextured screen-space quads for the crosshair and panels.
const flatVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;

uniform vec2 uResolution;

out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const flatFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// Text shader: screen-space textured quads sampling the glyph atlas.
const textVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

uniform vec2 uResolution;

out vec2 vUV;
out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vUV = aUV;
    vColor = aColor;
}
` + "\x00"

const textFragSrc = `#version 410 core

uniform sampler2D uFontTex;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    vec4 t = texture(uFontTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = vec4(t.rgb * vColor.rgb, t.a * vColor.a);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

// uniform looks up a uniform by its Go name.
func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
