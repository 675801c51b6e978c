package ir

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Text form of a program. Instructions are written one per line:
//
//	%name = Opcode[.type] arg... [flags=N]
//
// Arguments are %name references, typed immediates (u32:5, f32:1.5,
// u1:true), attr:param0, sreg:4, vreg:2 or - for an empty operand. Phis
// carry their type as a suffix (Phi.u32). Terminators are "branch b",
// "cond %c then else", "return" and "unreachable".

type programDoc struct {
	Stage         string     `yaml:"stage"`
	WorkgroupSize []uint32   `yaml:"workgroup_size,omitempty"`
	Info          infoDoc    `yaml:"info,omitempty"`
	Blocks        []blockDoc `yaml:"blocks"`
}

type infoDoc struct {
	Buffers          []bufferDoc  `yaml:"buffers,omitempty"`
	Images           []imageDoc   `yaml:"images,omitempty"`
	Samplers         []samplerDoc `yaml:"samplers,omitempty"`
	SharedMemorySize uint32       `yaml:"shared_memory_size,omitempty"`
	UserData         []uint32     `yaml:"user_data,omitempty"`
	OutputVertices   uint32       `yaml:"output_vertices,omitempty"`
}

type bufferDoc struct {
	Binding uint32 `yaml:"binding"`
	Storage bool   `yaml:"storage,omitempty"`
	Name    string `yaml:"name,omitempty"`
}

type imageDoc struct {
	Binding      uint32 `yaml:"binding"`
	Dim          string `yaml:"dim"`
	Arrayed      bool   `yaml:"arrayed,omitempty"`
	Multisampled bool   `yaml:"multisampled,omitempty"`
	Depth        bool   `yaml:"depth,omitempty"`
	Storage      bool   `yaml:"storage,omitempty"`
	Format       string `yaml:"format,omitempty"`
	Count        uint32 `yaml:"count,omitempty"`
	Runtime      bool   `yaml:"runtime,omitempty"`
	Name         string `yaml:"name,omitempty"`
}

type samplerDoc struct {
	Binding uint32 `yaml:"binding"`
	Name    string `yaml:"name,omitempty"`
}

type blockDoc struct {
	Name  string   `yaml:"name"`
	Preds []string `yaml:"preds,omitempty"`
	Insts []string `yaml:"insts,omitempty"`
	Term  string   `yaml:"term"`
}

var formatNames = [...]string{"float", "sint", "uint"}

// LoadProgram reads a program from a YAML file.
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := ParseProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// ParseProgram parses the YAML text form.
func ParseProgram(data []byte) (*Program, error) {
	var doc programDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	p := &parser{doc: &doc, blocks: make(map[string]*Block), insts: make(map[string]*Inst)}
	return p.program()
}

type parser struct {
	doc    *programDoc
	prog   *Program
	blocks map[string]*Block
	insts  map[string]*Inst
	nextID int
}

func (p *parser) program() (*Program, error) {
	stage, ok := ParseStage(p.doc.Stage)
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", p.doc.Stage)
	}
	p.prog = &Program{Stage: stage, WorkgroupSize: [3]uint32{1, 1, 1}}
	copy(p.prog.WorkgroupSize[:], p.doc.WorkgroupSize)
	if err := p.info(); err != nil {
		return nil, err
	}

	for i, bd := range p.doc.Blocks {
		b := &Block{Index: i, Name: bd.Name}
		if bd.Name == "" {
			b.Name = "b" + strconv.Itoa(i)
		}
		if _, dup := p.blocks[b.Name]; dup {
			return nil, fmt.Errorf("duplicate block %q", b.Name)
		}
		p.blocks[b.Name] = b
		p.prog.Blocks = append(p.prog.Blocks, b)
	}

	// Instructions are created before operands are resolved so that phis
	// can name values defined in later blocks.
	operands := make(map[*Inst][]string)
	for i, bd := range p.doc.Blocks {
		b := p.prog.Blocks[i]
		for _, line := range bd.Insts {
			inst, args, err := p.inst(b, line)
			if err != nil {
				return nil, fmt.Errorf("block %s: %q: %w", b.Name, line, err)
			}
			operands[inst] = args
		}
	}
	for _, b := range p.prog.Blocks {
		for _, inst := range b.Insts {
			for _, tok := range operands[inst] {
				v, err := p.value(tok)
				if err != nil {
					return nil, fmt.Errorf("block %s: %s: %w", b.Name, inst.Op, err)
				}
				inst.Args = append(inst.Args, v)
			}
		}
	}

	for i, bd := range p.doc.Blocks {
		if err := p.term(p.prog.Blocks[i], bd.Term); err != nil {
			return nil, fmt.Errorf("block %s: %w", p.prog.Blocks[i].Name, err)
		}
	}
	for i, bd := range p.doc.Blocks {
		if bd.Preds == nil {
			continue
		}
		b := p.prog.Blocks[i]
		b.Preds = b.Preds[:0]
		for _, name := range bd.Preds {
			pred, ok := p.blocks[name]
			if !ok {
				return nil, fmt.Errorf("block %s: unknown predecessor %q", b.Name, name)
			}
			b.Preds = append(b.Preds, pred)
		}
	}
	return p.prog, nil
}

func (p *parser) info() error {
	d := p.doc.Info
	info := &p.prog.Info
	for _, b := range d.Buffers {
		info.Buffers = append(info.Buffers, BufferResource(b))
	}
	for _, im := range d.Images {
		dim, ok := ParseImageDim(im.Dim)
		if !ok {
			return fmt.Errorf("unknown image dim %q", im.Dim)
		}
		format := FormatFloat
		if im.Format != "" {
			found := false
			for i, n := range formatNames {
				if n == im.Format {
					format, found = NumberFormat(i), true
				}
			}
			if !found {
				return fmt.Errorf("unknown image format %q", im.Format)
			}
		}
		info.Images = append(info.Images, ImageResource{
			Binding:      im.Binding,
			Dim:          dim,
			Arrayed:      im.Arrayed,
			Multisampled: im.Multisampled,
			Depth:        im.Depth,
			Storage:      im.Storage,
			Format:       format,
			Count:        im.Count,
			Runtime:      im.Runtime,
			Name:         im.Name,
		})
	}
	for _, s := range d.Samplers {
		info.Samplers = append(info.Samplers, SamplerResource(s))
	}
	info.SharedMemorySize = d.SharedMemorySize
	info.UserData = d.UserData
	info.OutputVertices = d.OutputVertices
	return nil
}

func (p *parser) inst(b *Block, line string) (*Inst, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("empty instruction")
	}
	var name string
	if len(fields) >= 3 && fields[1] == "=" {
		if !strings.HasPrefix(fields[0], "%") {
			return nil, nil, fmt.Errorf("result name must start with %%")
		}
		name = fields[0][1:]
		fields = fields[2:]
	}
	opName, typeName, hasType := strings.Cut(fields[0], ".")
	op, ok := ParseOpcode(opName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown opcode %q", opName)
	}
	inst := &Inst{Op: op, Name: name, id: p.nextID, block: b}
	p.nextID++
	if hasType {
		t, ok := ParseType(typeName)
		if !ok {
			return nil, nil, fmt.Errorf("unknown type %q", typeName)
		}
		inst.typ = t
	} else if op == OpPhi {
		return nil, nil, fmt.Errorf("phi needs a type suffix")
	}
	var args []string
	for _, f := range fields[1:] {
		if rest, ok := strings.CutPrefix(f, "flags="); ok {
			flags, err := strconv.ParseUint(rest, 0, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("bad flags: %w", err)
			}
			inst.Flags = uint32(flags)
			continue
		}
		args = append(args, f)
	}
	if name != "" {
		if _, dup := p.insts[name]; dup {
			return nil, nil, fmt.Errorf("duplicate value %%%s", name)
		}
		p.insts[name] = inst
	}
	b.Insts = append(b.Insts, inst)
	return inst, args, nil
}

func (p *parser) value(tok string) (Value, error) {
	if tok == "-" {
		return Empty, nil
	}
	if name, ok := strings.CutPrefix(tok, "%"); ok {
		inst, ok := p.insts[name]
		if !ok {
			return Empty, fmt.Errorf("undefined value %s", tok)
		}
		return Ref(inst), nil
	}
	kind, lit, ok := strings.Cut(tok, ":")
	if !ok {
		return Empty, fmt.Errorf("malformed operand %q", tok)
	}
	switch kind {
	case "attr":
		a, ok := ParseAttribute(lit)
		if !ok {
			return Empty, fmt.Errorf("unknown attribute %q", lit)
		}
		return Attr(a), nil
	case "sreg", "vreg":
		n, err := strconv.ParseUint(lit, 10, 32)
		if err != nil {
			return Empty, err
		}
		if kind == "sreg" {
			return SReg(ScalarReg(n)), nil
		}
		return VReg(VectorReg(n)), nil
	case "u1":
		b, err := strconv.ParseBool(lit)
		return Imm1(b), err
	case "f32":
		f, err := strconv.ParseFloat(lit, 32)
		return ImmF32(float32(f)), err
	case "f64":
		f, err := strconv.ParseFloat(lit, 64)
		return ImmF64(f), err
	}
	t, ok := ParseType(kind)
	if !ok || t&(U8|U16|U32|U64|F16) == 0 {
		return Empty, fmt.Errorf("unknown immediate type %q", kind)
	}
	n, err := strconv.ParseUint(lit, 0, t.Width())
	if err != nil {
		return Empty, err
	}
	return ImmBits(t, n), nil
}

func (p *parser) term(b *Block, s string) error {
	f := strings.Fields(s)
	if len(f) == 0 {
		return fmt.Errorf("missing terminator")
	}
	target := func(name string) (*Block, error) {
		t, ok := p.blocks[name]
		if !ok {
			return nil, fmt.Errorf("unknown block %q", name)
		}
		return t, nil
	}
	switch {
	case f[0] == "branch" && len(f) == 2:
		t, err := target(f[1])
		if err != nil {
			return err
		}
		b.Term = Terminator{Kind: TermBranch, True: t}
		t.Preds = append(t.Preds, b)
	case f[0] == "cond" && len(f) == 4:
		c, err := p.value(f[1])
		if err != nil {
			return err
		}
		t, err := target(f[2])
		if err != nil {
			return err
		}
		e, err := target(f[3])
		if err != nil {
			return err
		}
		b.Term = Terminator{Kind: TermCondBranch, Cond: c, True: t, False: e}
		t.Preds = append(t.Preds, b)
		if e != t {
			e.Preds = append(e.Preds, b)
		}
	case s == "return":
		b.Term = Terminator{Kind: TermReturn}
	case s == "unreachable":
		b.Term = Terminator{Kind: TermUnreachable}
	default:
		return fmt.Errorf("malformed terminator %q", s)
	}
	return nil
}

// Format renders the program in the YAML text form.
func Format(prog *Program) ([]byte, error) {
	doc := programDoc{Stage: prog.Stage.String(), WorkgroupSize: prog.WorkgroupSize[:]}
	info := prog.Info
	for _, b := range info.Buffers {
		doc.Info.Buffers = append(doc.Info.Buffers, bufferDoc(b))
	}
	for _, im := range info.Images {
		doc.Info.Images = append(doc.Info.Images, imageDoc{
			Binding:      im.Binding,
			Dim:          im.Dim.String(),
			Arrayed:      im.Arrayed,
			Multisampled: im.Multisampled,
			Depth:        im.Depth,
			Storage:      im.Storage,
			Format:       formatNames[im.Format],
			Count:        im.Count,
			Runtime:      im.Runtime,
			Name:         im.Name,
		})
	}
	for _, s := range info.Samplers {
		doc.Info.Samplers = append(doc.Info.Samplers, samplerDoc(s))
	}
	doc.Info.SharedMemorySize = info.SharedMemorySize
	doc.Info.UserData = info.UserData
	doc.Info.OutputVertices = info.OutputVertices

	for _, b := range prog.Blocks {
		bd := blockDoc{Name: b.Label()}
		for _, pred := range b.Preds {
			bd.Preds = append(bd.Preds, pred.Label())
		}
		for _, inst := range b.Insts {
			bd.Insts = append(bd.Insts, formatInst(inst))
		}
		switch b.Term.Kind {
		case TermBranch:
			bd.Term = "branch " + b.Term.True.Label()
		case TermCondBranch:
			bd.Term = fmt.Sprintf("cond %s %s %s", b.Term.Cond, b.Term.True.Label(), b.Term.False.Label())
		default:
			bd.Term = b.Term.Kind.String()
		}
		doc.Blocks = append(doc.Blocks, bd)
	}
	return yaml.Marshal(&doc)
}

func formatInst(inst *Inst) string {
	var sb strings.Builder
	if inst.Type() != Void {
		sb.WriteString("%" + inst.Label() + " = ")
	}
	sb.WriteString(inst.Op.String())
	if inst.Op == OpPhi {
		sb.WriteString("." + inst.typ.String())
	}
	for _, a := range inst.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	if inst.Flags != 0 {
		fmt.Fprintf(&sb, " flags=0x%x", inst.Flags)
	}
	return sb.String()
}
