package solution

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/scenario"
)

func writeData(path string, piecesPerState int, data Data) error {
	f, err := os.Create(path)
	if err != nil {
		return scenario.NewIoError("solution_export_data_create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.Write(dataMagic[:]); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	if err := writeU32(w, FormatVersion); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	if err := writeU32(w, uint32(piecesPerState)); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}

	if err := writeU32(w, uint32(len(data.States))); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	for _, st := range data.States {
		if err := writeI32(w, st.AbsKing.X); err != nil {
			return scenario.NewIoError("solution_export_data_write", path, err)
		}
		if err := writeI32(w, st.AbsKing.Y); err != nil {
			return scenario.NewIoError("solution_export_data_write", path, err)
		}
		for _, sq := range st.Pos.Squares() {
			if err := writeI64(w, sq.Raw()); err != nil {
				return scenario.NewIoError("solution_export_data_write", path, err)
			}
		}
	}

	if err := writeU32Slice(w, data.TrapSetIDs); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	if err := writeU32Slice(w, data.TempoSetIDs); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}

	if err := writeU32(w, uint32(len(data.Transitions))); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	for _, tr := range data.Transitions {
		if err := writeU32(w, tr.StateID); err != nil {
			return scenario.NewIoError("solution_export_data_write", path, err)
		}
		for _, dst := range tr.Next {
			if err := writeU32(w, dst); err != nil {
				return scenario.NewIoError("solution_export_data_write", path, err)
			}
		}
	}

	if err := writeStrategy(w, data.StrategyTrap); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}
	if err := writeStrategy(w, data.StrategyTempo); err != nil {
		return scenario.NewIoError("solution_export_data_write", path, err)
	}

	if err := w.Flush(); err != nil {
		return scenario.NewIoError("solution_export_data_flush", path, err)
	}
	return nil
}

func readData(path string, piecesPerState int) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_open", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	if magic != dataMagic {
		return Data{}, scenario.NewInvalidScenario("solution data.bin has wrong magic bytes")
	}

	version, err := readU32(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	if version != FormatVersion {
		return Data{}, scenario.NewInvalidScenario("solution data.bin version %d is not supported", version)
	}

	filePieceCount, err := readU32(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	if int(filePieceCount) != piecesPerState {
		return Data{}, scenario.NewInvalidScenario("solution data.bin piece_count %d mismatches manifest %d", filePieceCount, piecesPerState)
	}

	statesLen, err := readU32(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	states := make([]scenario.State, statesLen)
	for i := range states {
		x, err := readI32(r)
		if err != nil {
			return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
		}
		y, err := readI32(r)
		if err != nil {
			return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
		}

		squares := make([]core.Square, piecesPerState)
		for j := 0; j < piecesPerState; j++ {
			raw, err := readI64(r)
			if err != nil {
				return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
			}
			squares[j] = core.SquareFromRaw(raw)
		}

		states[i] = scenario.NewState(core.NewCoord(x, y), core.NewPosition(squares))
	}

	trapIDs, err := readU32Slice(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	tempoIDs, err := readU32Slice(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}

	transLen, err := readU32(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	transitions := make([]Transition, transLen)
	for i := range transitions {
		stateID, err := readU32(r)
		if err != nil {
			return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
		}
		var next [8]uint32
		for d := range next {
			v, err := readU32(r)
			if err != nil {
				return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
			}
			next[d] = v
		}
		transitions[i] = Transition{StateID: stateID, Next: next}
	}

	strategyTrap, err := readStrategy(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}
	strategyTempo, err := readStrategy(r)
	if err != nil {
		return Data{}, scenario.NewIoError("solution_load_data_read", path, err)
	}

	return Data{
		States:        states,
		TrapSetIDs:    trapIDs,
		TempoSetIDs:   tempoIDs,
		Transitions:   transitions,
		StrategyTrap:  strategyTrap,
		StrategyTempo: strategyTempo,
	}, nil
}

func writeStrategy(w io.Writer, entries []StrategyEntry) error {
	if err := writeU32(w, uint32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeU32(w, e.WhiteID); err != nil {
			return err
		}
		if err := writeU32(w, e.BlackID); err != nil {
			return err
		}
	}
	return nil
}

func readStrategy(r io.Reader) ([]StrategyEntry, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]StrategyEntry, n)
	for i := range out {
		w, err := readU32(r)
		if err != nil {
			return nil, err
		}
		b, err := readU32(r)
		if err != nil {
			return nil, err
		}
		out[i] = StrategyEntry{WhiteID: w, BlackID: b}
	}
	return out, nil
}

func writeU32Slice(w io.Writer, ids []uint32) error {
	if err := writeU32(w, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := writeU32(w, id); err != nil {
			return err
		}
	}
	return nil
}

func readU32Slice(r io.Reader) ([]uint32, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := readU32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeI32(w io.Writer, v int32) error {
	return writeU32(w, uint32(v))
}

func writeI64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readI32(r io.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}

func readI64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
