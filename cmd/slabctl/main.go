// Command slabctl accumulates input in a slab chain and reports on it.
package main

func main() {
	execute()
}
