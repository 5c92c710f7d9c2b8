package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// execLoadStore computes the effective address per spec.md §4.3, then reads
// or writes 1/2/4/8 bytes little-endian through it.
//
// Normal and pre-indexed addressing use base + sign_extend(offset) +
// (hasIndex ? index : 0) as the access address; pre-indexed additionally
// writes that address back into the base register. Post-indexed addressing
// accesses memory through the base register alone, then writes
// base + sign_extend(offset) back into it — the memory access must use the
// unmodified base, never the updated one.
func (c *CPU) execLoadStore(instr *isa.Instruction) error {
	p := instr.LoadStor
	addr := p.Address

	base := c.Reg.GetRaw(int(addr.Base.Number))
	offset := uint64(addr.Offset.SignExtended())

	var accessAddr uint64
	if addr.PostIndex {
		accessAddr = base
	} else {
		accessAddr = base + offset
		if addr.HasIndex {
			accessAddr += c.Reg.GetRaw(int(addr.Index.Number))
		}
	}

	if err := c.accessMemory(uint32(accessAddr), p); err != nil {
		return err
	}

	if addr.PreIndex {
		c.Reg.SetRaw(int(addr.Base.Number), accessAddr)
	} else if addr.PostIndex {
		c.Reg.SetRaw(int(addr.Base.Number), base+offset)
	}
	return nil
}

func (c *CPU) accessMemory(addr uint32, p *isa.LoadStorePayload) error {
	switch p.Op {
	case isa.MemLoadByte:
		v, err := c.Mem.ReadByte(addr)
		if err != nil {
			return err
		}
		c.Reg.Set(p.Rt, uint64(v))
	case isa.MemLoadHalf:
		v, err := c.Mem.ReadHalf(addr)
		if err != nil {
			return err
		}
		c.Reg.Set(p.Rt, uint64(v))
	case isa.MemLoadWord:
		v, err := c.Mem.ReadWord(addr)
		if err != nil {
			return err
		}
		c.Reg.Set(p.Rt, uint64(v))
	case isa.MemLoadDWord:
		v, err := c.Mem.ReadDWord(addr)
		if err != nil {
			return err
		}
		c.Reg.Set(p.Rt, v)
	case isa.MemStoreByte:
		return c.Mem.WriteByte(addr, uint8(c.Reg.Get(p.Rt)))
	case isa.MemStoreHalf:
		return c.Mem.WriteHalf(addr, uint16(c.Reg.Get(p.Rt)))
	case isa.MemStoreWord:
		return c.Mem.WriteWord(addr, uint32(c.Reg.Get(p.Rt)))
	case isa.MemStoreDWord:
		return c.Mem.WriteDWord(addr, c.Reg.Get(p.Rt))
	}
	return nil
}
