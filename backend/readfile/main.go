package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ttbt-io/matchkeeper/backend"
)

var (
	asJSON  = flag.Bool("json", false, "Print the sheets as JSON instead of share text")
	dateKey = flag.String("date", "", "Date of the sheets (YYYY-MM-DD), when not in the file name")
)

// main prints attendance sheets exported by matchkeeper.
func main() {
	flag.Parse()
	if *dateKey != "" {
		if _, err := backend.ParseDateKey(*dateKey); err != nil {
			log.Fatalf("--date: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, arg := range flag.Args() {
		key := *dateKey
		if key == "" {
			key = backend.DateKeyFromFileName(arg)
		}
		summary, err := readSheet(arg, key)
		if err != nil {
			log.Printf("%s: %v", arg, err)
			continue
		}
		fmt.Printf("=========== %s ===========\n", arg)
		if *asJSON {
			if err := enc.Encode(summary); err != nil {
				log.Printf("JSON: %s: %v", arg, err)
			}
			continue
		}
		fmt.Println(backend.AttendanceMessage(summary))
	}
}

func readSheet(path, dateKey string) (backend.AttendanceSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return backend.AttendanceSummary{}, err
	}
	defer f.Close()
	return backend.ReadAttendance(f, dateKey)
}
