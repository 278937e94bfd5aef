package main

var version = "v0.3.0"
