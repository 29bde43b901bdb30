package feature

// defaultSet is the stock phonological feature hierarchy, in the same YAML
// dialect LoadYAML accepts. It follows the conventional feature-geometric
// layout: a ROOT node dominating manner terminals, a Laryngeal node, and a
// Place node with Labial, Coronal and Dorsal subtrees.
const defaultSet = `
features:
  - name: ROOT
    type: node
    children: [sonorant, approximant, vocoid, nasal, lateral, continuant, Laryngeal, Place]
  - name: sonorant
    type: privative
  - name: approximant
    type: privative
  - name: vocoid
    type: privative
  - name: nasal
    type: privative
  - name: lateral
    type: privative
  - name: continuant
    type: binary
  - name: Laryngeal
    type: node
    children: [voice, spread, constricted]
  - name: voice
    type: binary
  - name: spread
    type: binary
  - name: constricted
    type: binary
  - name: Place
    type: node
    children: [pharyngeal, Labial, Coronal, Dorsal]
  - name: pharyngeal
    type: privative
  - name: Labial
    type: node
    children: [labial, round]
  - name: labial
    type: privative
  - name: round
    type: privative
  - name: Coronal
    type: node
    children: [coronal, anterior, distributed]
  - name: coronal
    type: privative
  - name: anterior
    type: binary
  - name: distributed
    type: binary
  - name: Dorsal
    type: node
    children: [dorsal, high, low, back, tense]
  - name: dorsal
    type: privative
  - name: high
    type: binary
  - name: low
    type: binary
  - name: back
    type: binary
  - name: tense
    type: binary
`

// Default returns a fresh Registry preloaded with the stock phonological
// hierarchy. Each call returns an independent registry.
func Default() *Registry {
	r := New()
	if err := r.LoadYAML([]byte(defaultSet)); err != nil {
		// The default set is a compile-time constant; failing to parse it
		// is a programming error, not a runtime condition.
		panic(err)
	}

	return r
}
