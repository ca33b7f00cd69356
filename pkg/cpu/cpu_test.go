package cpu

import "testing"

func TestAddiAndAdd(t *testing.T) {
	words := []uint32{
		0x00500093, // ADDI x1, x0, 5
		0x00300113, // ADDI x2, x0, 3
		0x002081B3, // ADD  x3, x1, x2
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(100)

	if machine.Regs.Read(1) != 5 {
		t.Errorf("x1 = %d, want 5", machine.Regs.Read(1))
	}
	if machine.Regs.Read(2) != 3 {
		t.Errorf("x2 = %d, want 3", machine.Regs.Read(2))
	}
	if machine.Regs.Read(3) != 8 {
		t.Errorf("x3 = %d, want 8", machine.Regs.Read(3))
	}
	if machine.Running {
		t.Error("CPU should have halted after running off the end of memory")
	}
}

func TestBeqTakenSkipsInstruction(t *testing.T) {
	words := []uint32{
		0x00500093, // ADDI x1, x0, 5
		0x00500113, // ADDI x2, x0, 5
		0x00208463, // BEQ  x1, x2, 8
		0x06300193, // ADDI x3, x0, 99  (skipped)
		0x00100213, // ADDI x4, x0, 1
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(100)

	if machine.Regs.Read(3) != 0 {
		t.Errorf("x3 = %d, want 0 (instruction should have been skipped)", machine.Regs.Read(3))
	}
	if machine.Regs.Read(4) != 1 {
		t.Errorf("x4 = %d, want 1", machine.Regs.Read(4))
	}
}

func TestBneNotTakenFallsThrough(t *testing.T) {
	words := []uint32{
		0x00500093, // ADDI x1, x0, 5
		0x00500113, // ADDI x2, x0, 5
		0x00209463, // BNE  x1, x2, 8 (not taken, x1==x2)
		0x00100193, // ADDI x3, x0, 1
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(100)

	if machine.Regs.Read(3) != 1 {
		t.Errorf("x3 = %d, want 1 (fallthrough should execute)", machine.Regs.Read(3))
	}
}

func TestLui(t *testing.T) {
	words := []uint32{
		0x123452B7, // LUI x5, 0x12345
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(10)
	if got := machine.Regs.Read(5); got != 0x12345000 {
		t.Errorf("x5 = 0x%X, want 0x12345000", got)
	}
}

func TestStoreThenLoad(t *testing.T) {
	words := []uint32{
		0x00A00093, // ADDI x1, x0, 10   (value to store)
		0x00000113, // ADDI x2, x0, 0    (base address 0)
		0x00112023, // SW   x1, 0(x2)
		0x00012183, // LW   x3, 0(x2)
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(10)
	if got := machine.Regs.Read(3); got != 10 {
		t.Errorf("x3 = %d, want 10 (load should see stored value)", got)
	}
}

func TestX0AlwaysZero(t *testing.T) {
	words := []uint32{
		0x00100013, // ADDI x0, x0, 1 (write to x0 discarded)
	}
	machine := NewCPU(&InstrMemory{Words: words}, NewDataMemory())
	machine.Run(10)
	if machine.Regs.Read(0) != 0 {
		t.Errorf("x0 = %d, want 0", machine.Regs.Read(0))
	}
}

func TestRunBatch(t *testing.T) {
	progs := []Program{
		{Name: "a", Words: []uint32{0x00500093}}, // ADDI x1,x0,5
		{Name: "b", Words: []uint32{0x00A00093}}, // ADDI x1,x0,10
	}
	results, completed := RunBatch(progs, 2, 10)
	if completed != 2 {
		t.Fatalf("completed = %d, want 2", completed)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	want := map[string]uint32{"a": 5, "b": 10}
	for _, r := range results {
		if r.Regs[1] != want[r.Name] {
			t.Errorf("program %s: x1 = %d, want %d", r.Name, r.Regs[1], want[r.Name])
		}
	}
}
