package copier_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/copytree/pkg/copier"
)

func ExampleNew() {
	parent, err := os.MkdirTemp("", "copytree-example-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(parent)

	src := filepath.Join(parent, "src")
	if err := os.Mkdir(src, 0o755); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644); err != nil {
		fmt.Println("error:", err)
		return
	}

	c := copier.New(copier.Options{Policy: copier.DefaultPolicy()})
	dst := filepath.Join(parent, "dst")
	if err := c.Copy(context.Background(), src, dst); err != nil {
		fmt.Println("error:", err)
		return
	}

	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(data))
	// Output: hello
}
