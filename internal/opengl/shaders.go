package opengl

// Built-in GLSL 4.10 sources. Every vertex shader reads the shared layout:
// location 0 position, 1 normal, 2 uv.

// TexturedVertSrc passes uv through for a flat textured draw.
const TexturedVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec2 inUV;

uniform mat4 transform;

out vec2 fragUV;

void main() {
    gl_Position = transform * vec4(inPosition, 1.0);
    fragUV = inUV;
}
` + "\x00"

// TexturedFragSrc multiplies the texture by a tint colour.
const TexturedFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D tex;
uniform vec4 tint;

void main() {
    outColor = texture(tex, fragUV) * tint;
}
` + "\x00"

// LitVertSrc transforms into world space for per-fragment lighting.
const LitVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 fragWorldPos;
out vec3 fragNormal;
out vec2 fragUV;

void main() {
    vec4 world = model * vec4(inPosition, 1.0);
    fragWorldPos = world.xyz;
    fragNormal = mat3(transpose(inverse(model))) * inNormal;
    fragUV = inUV;
    gl_Position = projection * view * world;
}
` + "\x00"

// LitFragSrc is Phong shading with one directional light, up to 8 point
// lights and an optional spot light. Field names match scene.*Light.Apply.
const LitFragSrc = `
#version 410 core
#define MAX_POINT_LIGHTS 8

struct Material {
    sampler2D diffuse;
    sampler2D specular;
    vec3 diffuseColor;
    vec3 specularColor;
    float shininess;
};

struct DirLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct PointLight {
    vec3 position;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float constant;
    float linear;
    float quadratic;
};

struct SpotLight {
    vec3 position;
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float cutOff;
    float outerCutOff;
    float constant;
    float linear;
    float quadratic;
};

in vec3 fragWorldPos;
in vec3 fragNormal;
in vec2 fragUV;
out vec4 outColor;

uniform Material material;
uniform DirLight dirLight;
uniform PointLight pointLights[MAX_POINT_LIGHTS];
uniform int pointLightCount;
uniform SpotLight spotLight;
uniform bool isSpotLightSetup;
uniform vec3 viewPos;

vec3 diffuseSample;
vec3 specularSample;

float attenuation(float d, float c, float l, float q) {
    return 1.0 / (c + l * d + q * d * d);
}

vec3 shade(vec3 L, vec3 N, vec3 V, vec3 ambient, vec3 diffuse, vec3 specular) {
    float diff = max(dot(N, L), 0.0);
    vec3 R = reflect(-L, N);
    float spec = pow(max(dot(V, R), 0.0), material.shininess);
    return ambient * diffuseSample
         + diffuse * diff * diffuseSample
         + specular * spec * specularSample;
}

vec3 dirContribution(DirLight light, vec3 N, vec3 V) {
    return shade(normalize(-light.direction), N, V, light.ambient, light.diffuse, light.specular);
}

vec3 pointContribution(PointLight light, vec3 N, vec3 V) {
    vec3 toLight = light.position - fragWorldPos;
    float att = attenuation(length(toLight), light.constant, light.linear, light.quadratic);
    return att * shade(normalize(toLight), N, V, light.ambient, light.diffuse, light.specular);
}

vec3 spotContribution(SpotLight light, vec3 N, vec3 V) {
    vec3 toLight = light.position - fragWorldPos;
    vec3 L = normalize(toLight);
    float theta = dot(L, normalize(-light.direction));
    float epsilon = light.cutOff - light.outerCutOff;
    float cone = clamp((theta - light.outerCutOff) / epsilon, 0.0, 1.0);
    float att = attenuation(length(toLight), light.constant, light.linear, light.quadratic);
    vec3 ambient = light.ambient * diffuseSample;
    vec3 lit = shade(L, N, V, vec3(0.0), light.diffuse, light.specular);
    return att * (ambient + cone * lit);
}

void main() {
    vec4 base = texture(material.diffuse, fragUV);
    if (base.a < 0.1) {
        discard;
    }
    diffuseSample = base.rgb * material.diffuseColor;
    specularSample = texture(material.specular, fragUV).rgb * material.specularColor;

    vec3 N = normalize(fragNormal);
    vec3 V = normalize(viewPos - fragWorldPos);

    vec3 result = dirContribution(dirLight, N, V);
    for (int i = 0; i < pointLightCount && i < MAX_POINT_LIGHTS; i++) {
        result += pointContribution(pointLights[i], N, V);
    }
    if (isSpotLightSetup) {
        result += spotContribution(spotLight, N, V);
    }
    outColor = vec4(result, 1.0);
}
` + "\x00"

// basicVertSrc is position-only MVP, shared by the lamp and border shaders.
const basicVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(inPosition, 1.0);
}
` + "\x00"

// LampVertSrc draws light marker cubes.
const LampVertSrc = basicVertSrc

// LampFragSrc paints the light's colour without shading.
const LampFragSrc = `
#version 410 core
out vec4 outColor;

uniform vec3 lampColor;

void main() {
    outColor = vec4(lampColor, 1.0);
}
` + "\x00"

const borderFragSrc = `
#version 410 core
out vec4 outColor;

uniform vec3 borderColor;

void main() {
    outColor = vec4(borderColor, 1.0);
}
` + "\x00"

// SimpleTextureVertSrc is an unlit MVP draw with uv.
const SimpleTextureVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec2 fragUV;

void main() {
    fragUV = inUV;
    gl_Position = projection * view * model * vec4(inPosition, 1.0);
}
` + "\x00"

// SimpleTextureFragSrc samples with alpha; fully transparent texels are
// discarded so they never write depth.
const SimpleTextureFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D tex;
uniform vec4 tint;

void main() {
    vec4 c = texture(tex, fragUV) * tint;
    if (c.a < 0.01) {
        discard;
    }
    outColor = c;
}
` + "\x00"

// ScreenVertSrc places a clip-space quad, shrunk toward the centre by scale.
const ScreenVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec2 inUV;

uniform float scale;

out vec2 fragUV;

void main() {
    fragUV = inUV;
    gl_Position = vec4(inPosition.xy * scale, 0.0, 1.0);
}
` + "\x00"

// ScreenFragSrc copies the framebuffer colour texture.
const ScreenFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D screenTexture;

void main() {
    outColor = vec4(texture(screenTexture, fragUV).rgb, 1.0);
}
` + "\x00"
