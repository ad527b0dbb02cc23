package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AgentConfig struct {
	ID          int
	Simulations int
	MaxSteps    int
	Exploration float64
	Temperature float64
	Training    bool // Sample moves instead of taking the most visited one
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run> and writes every file
// there.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp, the run ID separates runs started in the same second
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	run := strings.SplitN(uuid.NewString(), "-", 2)[0]
	baseDir := filepath.Join(root, name, timestamp+"-"+run)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "simulations", "max_steps", "exploration", "temperature", "training"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Simulations),
			strconv.Itoa(config.MaxSteps),
			formatFloat(config.Exploration),
			formatFloat(config.Temperature),
			strconv.FormatBool(config.Training),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "simulations", "nodes", "max_depth", "terminal_stops", "depth_stops", "dead_ends"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Action),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.TerminalStops),
			strconv.Itoa(record.DepthStops),
			strconv.Itoa(record.DeadEnds),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", file, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
