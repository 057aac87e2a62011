package client

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/treeforest/easyfill/pkg/utils"
	log "github.com/treeforest/logger"
)

var ErrUsage = errors.New("usage")

// Command 通过 http 访问节点的命令行
type Command struct {
	client  *HttpClient
	out     io.Writer
	timeout time.Duration
}

func New(baseUrl string, out io.Writer) *Command {
	return &Command{client: NewHttpClient(baseUrl), out: out, timeout: 10 * time.Second}
}

func (c *Command) printUsage() {
	fmt.Fprintln(c.out, "Usage:")
	fmt.Fprintf(c.out, "\tsegment -script HEX -- 切分脚本模板\n")
	fmt.Fprintf(c.out, "\tdisasm -script HEX -- 反汇编脚本\n")
	fmt.Fprintf(c.out, "\tregister -script HEX -- 向节点注册模板\n")
	fmt.Fprintf(c.out, "\tget -id ID -- 获取模板\n")
	fmt.Fprintf(c.out, "\tlist -- 获取所有模板\n")
	fmt.Fprintf(c.out, "\tremove -id ID -- 删除模板\n")
	fmt.Fprintf(c.out, "\tprove -id ID -index N -- 获取片段证明\n")
}

func (c *Command) Run(args []string) error {
	cmdSegment := flag.NewFlagSet("segment", flag.ContinueOnError)
	argSegmentScript := cmdSegment.String("script", "", "hex 编码的脚本")
	cmdDisasm := flag.NewFlagSet("disasm", flag.ContinueOnError)
	argDisasmScript := cmdDisasm.String("script", "", "hex 编码的脚本")
	cmdRegister := flag.NewFlagSet("register", flag.ContinueOnError)
	argRegisterScript := cmdRegister.String("script", "", "hex 编码的脚本")
	cmdGet := flag.NewFlagSet("get", flag.ContinueOnError)
	argGetID := cmdGet.String("id", "", "模板 ID")
	cmdList := flag.NewFlagSet("list", flag.ContinueOnError)
	cmdRemove := flag.NewFlagSet("remove", flag.ContinueOnError)
	argRemoveID := cmdRemove.String("id", "", "模板 ID")
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

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	switch args[0] {
	case "segment":
		if !c.parseCommand(cmdSegment, args[1:]) {
			goto HELP
		}
		return c.segment(ctx, *argSegmentScript)
	case "disasm":
		if !c.parseCommand(cmdDisasm, args[1:]) {
			goto HELP
		}
		return c.disasm(ctx, *argDisasmScript)
	case "register":
		if !c.parseCommand(cmdRegister, args[1:]) || *argRegisterScript == "" {
			goto HELP
		}
		return c.register(ctx, *argRegisterScript)
	case "get":
		if !c.parseCommand(cmdGet, args[1:]) || !utils.IsValidTemplateID(*argGetID) {
			goto HELP
		}
		return c.get(ctx, *argGetID)
	case "list":
		if !c.parseCommand(cmdList, args[1:]) {
			goto HELP
		}
		return c.list(ctx)
	case "remove":
		if !c.parseCommand(cmdRemove, args[1:]) || !utils.IsValidTemplateID(*argRemoveID) {
			goto HELP
		}
		if err := c.client.Remove(ctx, *argRemoveID); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "removed %s\n", *argRemoveID)
		return nil
	case "prove":
		if !c.parseCommand(cmdProve, args[1:]) || !utils.IsValidTemplateID(*argProveID) || *argProveIndex < 0 {
			goto HELP
		}
		return c.prove(ctx, *argProveID, *argProveIndex)
	default:
		goto HELP
	}
HELP:
	c.printUsage()
	return ErrUsage
}

func (c *Command) parseCommand(cmd *flag.FlagSet, args []string) bool {
	if err := cmd.Parse(args); err != nil {
		log.Debug("parse command failed:", err)
		return false
	}
	return cmd.Parsed()
}

func decodeScript(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("script is not hex: %v", err)
	}
	return raw, nil
}

func (c *Command) printTemplate(tpl *Template) {
	fmt.Fprintf(c.out, "id: %s\n", tpl.ID)
	fmt.Fprintf(c.out, "hash160: %s\n", tpl.Hash160)
	fmt.Fprintf(c.out, "root: %s\n", tpl.Root)
	fmt.Fprintf(c.out, "slots: %d\n", tpl.Slots)
	fmt.Fprintf(c.out, "segments: %d\n", len(tpl.Segments))
	for i, seg := range tpl.Segments {
		fmt.Fprintf(c.out, "[%d] %s\n", i, seg)
	}
}

func (c *Command) segment(ctx context.Context, s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	res, err := c.client.Segment(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "segments: %d\n", len(res.Segments))
	for i, seg := range res.Segments {
		fmt.Fprintf(c.out, "[%d] %s\n", i, seg)
	}
	if res.Root != "" {
		fmt.Fprintf(c.out, "root: %s\n", res.Root)
	}
	return nil
}

func (c *Command) disasm(ctx context.Context, s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	asm, err := c.client.Disasm(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, asm)
	return nil
}

func (c *Command) register(ctx context.Context, s string) error {
	raw, err := decodeScript(s)
	if err != nil {
		return err
	}
	tpl, err := c.client.Register(ctx, raw)
	if err != nil {
		return err
	}
	c.printTemplate(tpl)
	return nil
}

func (c *Command) get(ctx context.Context, id string) error {
	tpl, err := c.client.Get(ctx, id)
	if err != nil {
		return err
	}
	c.printTemplate(tpl)
	return nil
}

func (c *Command) list(ctx context.Context) error {
	tpls, err := c.client.List(ctx)
	if err != nil {
		return err
	}
	for _, tpl := range tpls {
		fmt.Fprintf(c.out, "%s %d segments root %s\n", tpl.ID, len(tpl.Segments), tpl.Root)
	}
	return nil
}

func (c *Command) prove(ctx context.Context, id string, index int) error {
	proof, err := c.client.Prove(ctx, id, index)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "segment: %s\n", proof.Segment)
	fmt.Fprintf(c.out, "leaf: %s\n", proof.LeafHash)
	fmt.Fprintf(c.out, "root: %s\n", proof.Root)
	for _, p := range proof.Proof {
		fmt.Fprintf(c.out, "proof: %s\n", p)
	}
	return nil
}
