package prompt

import (
	"strings"

	"ai-luthier-be/pkg/guitar"
)

// SynthesisBuilder assembles the instruction sent to the technical-prompt
// synthesizer from the target specification and the detected design
// philosophy of the uploaded instrument.
type SynthesisBuilder struct {
	specs      *guitar.Specification
	philosophy string
}

func NewSynthesisBuilder(specs *guitar.Specification, philosophy string) *SynthesisBuilder {
	return &SynthesisBuilder{
		specs:      specs,
		philosophy: philosophy,
	}
}

// Build creates the full synthesis instruction. The preserve/deviate clause
// is decided purely by HasModTrigger over the notes field.
func (b *SynthesisBuilder) Build() string {
	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeTargetSpecs(&prompt)
	b.writePhilosophy(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *SynthesisBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a master luthier writing the technical build description for a custom guitar modification.\n")
	prompt.WriteString("Study the attached photograph of the original instrument, then describe the modified instrument as a single, dense, photorealistic image-generation prompt.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *SynthesisBuilder) writeTargetSpecs(prompt *strings.Builder) {
	prompt.WriteString("<target_specification>\n")
	writeLine := func(label, value, characteristic string) {
		prompt.WriteString(label)
		prompt.WriteString(": ")
		prompt.WriteString(value)
		if characteristic != "" {
			prompt.WriteString(" — ")
			prompt.WriteString(characteristic)
		}
		prompt.WriteString("\n")
	}

	wood, _ := b.specs.BodyWood.Describe()
	neck, _ := b.specs.NeckProfile.Describe()
	board, _ := b.specs.Fretboard.Describe()
	bridge, _ := b.specs.Bridge.Describe()
	pickups, _ := b.specs.Pickups.Describe()

	writeLine("Body wood", string(b.specs.BodyWood), wood)
	writeLine("Neck profile", string(b.specs.NeckProfile), neck)
	writeLine("Fretboard", string(b.specs.Fretboard), board)
	writeLine("Bridge", string(b.specs.Bridge), bridge)
	writeLine("Pickups", string(b.specs.Pickups), pickups)
	writeLine("Scale length", b.specs.ScaleLength, "")
	writeLine("Fretboard radius", b.specs.FretboardRadius, "")

	if b.specs.Construction != "" {
		writeLine("Construction", b.specs.Construction, "")
	}
	if b.specs.Notes != "" {
		writeLine("Builder notes", b.specs.Notes, "")
	}
	prompt.WriteString("</target_specification>\n\n")
}

func (b *SynthesisBuilder) writePhilosophy(prompt *strings.Builder) {
	philosophy := b.philosophy
	if philosophy == "" {
		philosophy = "unknown"
	}

	prompt.WriteString("<design_philosophy>\n")
	prompt.WriteString("Original design philosophy of the photographed instrument: ")
	prompt.WriteString(philosophy)
	prompt.WriteString("\n")

	if HasModTrigger(b.specs.Notes) {
		prompt.WriteString("The builder notes signal an intentional stylistic deviation. Deliberately break from the original design philosophy: push the result toward an aggressive, boutique custom-shop aesthetic that makes the modification the centerpiece of the instrument.\n")
	} else {
		prompt.WriteString("Preserve the original design philosophy in every visual decision, unless a requested modification is inherently incompatible with it; in that case keep the departure as small as the modification allows.\n")
	}
	prompt.WriteString("</design_philosophy>\n\n")
}

func (b *SynthesisBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("Write one continuous paragraph. Name concrete materials, finishes and hardware. Keep the body shape, headstock and proportions of the photographed instrument recognizable. Do not mention brands. Output only the image prompt, no preamble.\n")
	prompt.WriteString("</guidelines>\n")
}
