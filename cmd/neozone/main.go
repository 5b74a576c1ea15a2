/*
 * @author: Sun977
 * @date: 2026.02.15
 * @description: NeoZone 程序入口
 */

package main

func main() {
	Execute()
}
