// Package main provides the Axon CLI.
package main

import (
	"fmt"
	"os"

	"github.com/axon-ml/axon/backend/cpu"
	"github.com/axon-ml/axon/backend/webgpu"
	"github.com/axon-ml/axon/kernels"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Axon %s\n", version)
			return
		case "backends":
			printBackends()
			return
		}
	}

	fmt.Println("Axon - Tensor Indexing Kernels for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  backends   Probe available backends and their kernels")
}

func printBackends() {
	reg := kernels.NewRegistry()

	c := cpu.New()
	fmt.Printf("CPU: available\n")
	fmt.Printf("  kernels: %v\n", reg.SupportedOps(c.Device()))

	gpu, err := webgpu.New()
	if err != nil {
		fmt.Printf("WebGPU: unavailable (%v)\n", err)
		return
	}
	defer gpu.Release()

	fmt.Printf("WebGPU: available\n")
	if info := gpu.AdapterInfo(); info != nil {
		fmt.Printf("  adapter: %s\n", info.Device)
	}
	fmt.Printf("  kernels: %v\n", reg.SupportedOps(gpu.Device()))
}
