package fill

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/treeforest/easyfill/dao"
	"github.com/treeforest/easyfill/script"
	log "github.com/treeforest/logger"
)

var ErrUsage = errors.New("usage")

type Command struct {
	dbPath      string
	placeholder byte
	out         io.Writer
}

func NewCommand(dbPath string, placeholder byte, out io.Writer) *Command {
	return &Command{dbPath: dbPath, placeholder: placeholder, out: out}
}

func (c *Command) printUsage() {
	fmt.Fprintln(c.out, "Usage:")
	// 切分
	fmt.Fprintf(c.out, "\tsegment -script HEX -- 切分脚本模板，输出各片段\n")
	fmt.Fprintf(c.out, "\tdisasm -script HEX -- 反汇编脚本\n")
	// 模板存储
	fmt.Fprintf(c.out, "\tregister -script HEX -- 存储脚本模板\n")
	fmt.Fprintf(c.out, "\tget -id ID -- 输出模板\n")
	fmt.Fprintf(c.out, "\tlist -- 输出所有模板\n")
	fmt.Fprintf(c.out, "\tremove -id ID -- 删除模板\n")
	fmt.Fprintf(c.out, "\tprove -id ID -index N -- 生成片段默克尔证明\n")
}

// Run 执行子命令，参数不合法时输出用法并返回 ErrUsage
func (c *Command) Run(args []string) error {
	// 切分
	cmdSegment := flag.NewFlagSet("segment", flag.ContinueOnError)
	argSegmentScript := cmdSegment.String("script", "", "hex 编码的脚本")
	// 反汇编
	cmdDisasm := flag.NewFlagSet("disasm", flag.ContinueOnError)
	argDisasmScript := cmdDisasm.String("script", "", "hex 编码的脚本")
	// 存储
	cmdRegister := flag.NewFlagSet("register", flag.ContinueOnError)
	argRegisterScript := cmdRegister.String("script", "", "hex 编码的脚本")
	cmdGet := flag.NewFlagSet("get", flag.ContinueOnError)
	argGetID := cmdGet.String("id", "", "模板 ID")
	cmdList := flag.NewFlagSet("list", flag.ContinueOnError)
	cmdRemove := flag.NewFlagSet("remove", flag.ContinueOnError)
	argRemoveID := cmdRemove.String("id", "", "模板 ID")
	// 证明
	cmdProve := flag.NewFlagSet("prove", flag.ContinueOnError)
	argProveID := cmdProve.String("id", "", "模板 ID")
	argProveIndex := cmdProve.Int("index", 0, "片段下标")

	for _, fs := range []*flag.FlagSet{cmdSegment, cmdDisasm, cmdRegister, cmdGet, cmdList, cmdRemove, cmdProve} {
		fs.SetOutput(c.out)
	}

	if len(args) < 1 {
		c.printUsage()
		return ErrUsage
	}

	switch args[0] {
	case "segment":
		if !parseCommand(cmdSegment, args[1:]) {
			goto HELP
		}
		return c.segment(*argSegmentScript)
	case "disasm":
		if !parseCommand(cmdDisasm, args[1:]) {
			goto HELP
		}
		return c.disasm(*argDisasmScript)
	case "register":
		if !parseCommand(cmdRegister, args[1:]) || *argRegisterScript == "" {
			goto HELP
		}
		return c.register(*argRegisterScript)
	case "get":
		if !parseCommand(cmdGet, args[1:]) || *argGetID == "" {
			goto HELP
		}
		return c.get(*argGetID)
	case "list":
		if !parseCommand(cmdList, args[1:]) {
			goto HELP
		}
		return c.list()
	case "remove":
		if !parseCommand(cmdRemove, args[1:]) || *argRemoveID == "" {
			goto HELP
		}
		return c.remove(*argRemoveID)
	case "prove":
		if !parseCommand(cmdProve, args[1:]) || *argProveID == "" || *argProveIndex < 0 {
			goto HELP
		}
		return c.prove(*argProveID, *argProveIndex)
	default:
		goto HELP
	}
HELP:
	c.printUsage()
	return ErrUsage
}

func parseCommand(cmd *flag.FlagSet, args []string) bool {
	if err := cmd.Parse(args); err != nil {
		log.Debug("parse command failed:", err)
		return false
	}
	return cmd.Parsed()
}

func decodeScript(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "script is not hex")
	}
	return raw, nil
}

// withTemplates 打开数据库执行 fn
func (c *Command) withTemplates(fn func(s *Templates) error) error {
	store, err := dao.New(c.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(NewTemplates(store, c.placeholder))
}

func (c *Command) printSegments(segments [][]byte) {
	for i, seg := range segments {
		asm, err := script.DisasmString(seg)
		if err != nil {
			asm = err.Error()
		}
		fmt.Fprintf(c.out, "[%d] %x\n\t%s\n", i, seg, asm)
	}
}

func (c *Command) printTemplate(tpl *Template) {
	fmt.Fprintf(c.out, "id: %s\n", tpl.ID)
	fmt.Fprintf(c.out, "hash160: %x\n", tpl.Hash160)
	fmt.Fprintf(c.out, "root: %x\n", tpl.Root)
	fmt.Fprintf(c.out, "slots: %d\n", tpl.Slots)
	fmt.Fprintf(c.out, "segments: %d\n", len(tpl.Segments))
	c.printSegments(tpl.Segments)
}

func (c *Command) segment(s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	f, err := (&script.Segmenter{Placeholder: c.placeholder}).Segment(script.NewTokenizer(raw))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "segments: %d\n", f.Len())
	c.printSegments(f.Segments)
	return nil
}

func (c *Command) disasm(s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	asm, err := script.DisasmString(raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, asm)
	return nil
}

func (c *Command) register(s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	return c.withTemplates(func(templates *Templates) error {
		tpl, created, err := templates.Register(raw)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintln(c.out, "template already exists")
		}
		c.printTemplate(tpl)
		return nil
	})
}

func (c *Command) get(id string) error {
	return c.withTemplates(func(templates *Templates) error {
		tpl, err := templates.Get(id)
		if err != nil {
			return err
		}
		c.printTemplate(tpl)
		return nil
	})
}

func (c *Command) list() error {
	return c.withTemplates(func(templates *Templates) error {
		tpls, err := templates.List()
		if err != nil {
			return err
		}
		for _, tpl := range tpls {
			fmt.Fprintf(c.out, "%s %d segments root %x\n", tpl.ID, len(tpl.Segments), tpl.Root)
		}
		return nil
	})
}

func (c *Command) remove(id string) error {
	return c.withTemplates(func(templates *Templates) error {
		if err := templates.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "removed %s\n", id)
		return nil
	})
}

func (c *Command) prove(id string, index int) error {
	return c.withTemplates(func(templates *Templates) error {
		proof, err := templates.Prove(id, index)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "segment: %x\n", proof.Segment)
		fmt.Fprintf(c.out, "leaf: %x\n", proof.LeafHash)
		fmt.Fprintf(c.out, "root: %x\n", proof.Root)
		for _, p := range proof.Proof {
			fmt.Fprintf(c.out, "proof: %x\n", p)
		}
		return nil
	})
}
